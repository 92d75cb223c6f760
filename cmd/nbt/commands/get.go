package commands

import (
	"context"
	"os"

	"github.com/chaisql/nbt/cmd/nbt/nbtutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewGetCommand returns a cli.Command for "nbt get".
func NewGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value found at a path.",
		UsageText: `nbt get [options] file path`,
		Description: `The get command prints a value of an NBT file in SNBT notation.
Names are separated by dots, list elements are selected by index:

$ nbt get level.dat Data.Player.Inventory[0]
{Count:1b,Slot:0b,id:"minecraft:stone"}`,
		Flags: decodeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New(cmd.UsageText)
			}

			doc, err := readDocument(cmd)
			if err != nil {
				return err
			}

			return nbtutil.Get(os.Stdout, doc, cmd.Args().Get(1))
		},
	}
}
