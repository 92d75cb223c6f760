package commands

import (
	"context"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/cmd/nbt/nbtutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewPackCommand returns a cli.Command for "nbt pack".
func NewPackCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "Encode a typed JSON file created by nbt dump.",
		UsageText: `nbt pack [options] file.json`,
		Description: `The pack command encodes a typed JSON document back into NBT:

$ nbt pack -c gzip -f level.dat level.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "compression",
				Aliases: []string{"c"},
				Value:   "none",
				Usage:   "compression of the output: none, gzip or zlib.",
			},
			&cli.BoolFlag{
				Name:  "modified-utf8",
				Usage: "encode text as Java modified UTF-8.",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Value: nbt.DefaultMaxDepth,
				Usage: "maximum nesting of compounds and lists.",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "name of the file to output to. Defaults to STDOUT.",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New(cmd.UsageText)
			}

			c, err := nbt.ParseCompression(cmd.String("compression"))
			if err != nil {
				return err
			}

			r, err := nbtutil.OpenInput(path)
			if err != nil {
				return err
			}
			defer r.Close()

			w, err := nbtutil.CreateOutput(cmd.String("file"))
			if err != nil {
				return err
			}
			defer w.Close()

			return nbtutil.Pack(r, w, &nbt.Options{
				MaxDepth:     int(cmd.Int("max-depth")),
				ModifiedUTF8: cmd.Bool("modified-utf8"),
				Compression:  c,
			})
		},
	}
}
