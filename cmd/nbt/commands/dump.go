package commands

import (
	"context"

	"github.com/chaisql/nbt/cmd/nbt/nbtutil"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewDumpCommand returns a cli.Command for "nbt dump".
func NewDumpCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "dump",
		Usage:     "Dump an NBT file as typed JSON.",
		UsageText: `nbt dump [options] file`,
		Description: `The dump command decodes an NBT file and writes it as typed JSON,
keeping the kind of every value:

$ nbt dump level.dat
{
  "name": "",
  "root": {
    "type": "TAG_Compound",
    ...

The output can be edited and turned back into NBT with "nbt pack".
Use "-" to read from STDIN.`,
		Flags: append(decodeFlags(),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "name of the file to output to. Defaults to STDOUT.",
			},
		),
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		doc, err := readDocument(cmd)
		if err != nil {
			return err
		}

		w, err := nbtutil.CreateOutput(cmd.String("file"))
		if err != nil {
			return err
		}
		defer w.Close()

		return nbtutil.Dump(w, doc)
	}

	return &cmd
}

// readDocument decodes the file named by the first argument of cmd.
func readDocument(cmd *cli.Command) (*types.Document, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, errors.New(cmd.UsageText)
	}

	opts, err := decodeOptions(cmd)
	if err != nil {
		return nil, err
	}

	r, err := nbtutil.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc, err := nbtutil.ReadDocument(r, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", path)
	}

	return doc, nil
}
