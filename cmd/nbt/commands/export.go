package commands

import (
	"context"

	"github.com/chaisql/nbt/cmd/nbt/nbtutil"
	"github.com/chaisql/nbt/internal/export"
	"github.com/urfave/cli/v3"
)

// NewExportCommand returns a cli.Command for "nbt export".
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export an NBT file as plain JSON, YAML or CBOR.",
		UsageText: `nbt export [options] file [path]`,
		Description: `The export command converts an NBT file, or the value found at a path,
to a format other tools understand. Tag kinds are lost:

$ nbt export -t yaml level.dat Data.Player
Health: 20
...`,
		Flags: append(decodeFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   "json",
				Usage:   "output format: json, yaml or cbor.",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "name of the file to output to. Defaults to STDOUT.",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := export.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd)
			if err != nil {
				return err
			}

			w, err := nbtutil.CreateOutput(cmd.String("file"))
			if err != nil {
				return err
			}
			defer w.Close()

			return nbtutil.Export(w, doc, cmd.Args().Get(1), f)
		},
	}
}
