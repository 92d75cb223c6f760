package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "nbt version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows the nbt CLI version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Println(`version not available in GOPATH mode; use "go install" with Go modules enabled`)
				return nil
			}

			fmt.Printf("nbt %v (%v)\n", info.Main.Version, info.GoVersion)
			return nil
		},
	}
}
