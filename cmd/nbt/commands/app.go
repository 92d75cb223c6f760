package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/chaisql/nbt"
	"github.com/urfave/cli/v3"
)

// NewApp creates the nbt CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:                  "nbt",
		Usage:                 "Inspect and convert Named Binary Tag files",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug messages to STDERR.",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			NewDumpCommand(),
			NewPackCommand(),
			NewGetCommand(),
			NewExportCommand(),
			NewCheckCommand(),
			NewVersionCommand(),
		},
	}
}

// decodeFlags are the flags of the commands reading NBT files.
func decodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "compression",
			Aliases: []string{"c"},
			Value:   "auto",
			Usage:   "compression of the input: none, gzip, zlib or auto.",
		},
		&cli.IntFlag{
			Name:  "max-depth",
			Value: nbt.DefaultMaxDepth,
			Usage: "maximum nesting of compounds and lists.",
		},
		&cli.IntFlag{
			Name:  "max-length",
			Value: nbt.DefaultMaxLength,
			Usage: "maximum size in bytes of a string or array, negative for no limit.",
		},
		&cli.BoolFlag{
			Name:  "modified-utf8",
			Usage: "decode text as Java modified UTF-8.",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject compounds holding the same name twice.",
		},
	}
}

func decodeOptions(cmd *cli.Command) (*nbt.Options, error) {
	c, err := nbt.ParseCompression(cmd.String("compression"))
	if err != nil {
		return nil, err
	}

	return &nbt.Options{
		MaxDepth:             int(cmd.Int("max-depth")),
		MaxLength:            int(cmd.Int("max-length")),
		ModifiedUTF8:         cmd.Bool("modified-utf8"),
		RejectDuplicateNames: cmd.Bool("strict"),
		Compression:          c,
	}, nil
}
