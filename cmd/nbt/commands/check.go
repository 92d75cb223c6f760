package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chaisql/nbt/cmd/nbt/nbtutil"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

// NewCheckCommand returns a cli.Command for "nbt check".
func NewCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate NBT files.",
		UsageText: `nbt check [options] file...`,
		Description: `The check command decodes every document of the given files in parallel
and reports the ones that fail:

$ nbt check -j 4 region/*.nbt
region/broken.nbt: document 0: offset 1042: unexpected end of stream
error: 1 of 12 files are invalid`,
		Flags: append(decodeFlags(),
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "number of files checked concurrently. Defaults to the number of CPUs.",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New(cmd.UsageText)
			}

			opts, err := decodeOptions(cmd)
			if err != nil {
				return err
			}

			results, err := nbtutil.Check(ctx, paths, opts, int(cmd.Int("jobs")))
			if err != nil {
				return err
			}

			var failed, documents int
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Printf("%s: %v\n", r.Path, r.Err)
					continue
				}
				documents += r.Documents
			}

			slog.Info("check done", "files", len(results), "documents", documents, "invalid", failed)
			if failed > 0 {
				return errors.Newf("%d of %d files are invalid", failed, len(results))
			}

			return nil
		},
	}
}
