package nbtutil

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/chaisql/nbt"
	"golang.org/x/sync/errgroup"
)

// CheckResult reports the validation of one file.
type CheckResult struct {
	Path      string
	Documents int
	Err       error
}

// Check decodes every document of every file in paths, using up to jobs
// goroutines. A file failing to decode doesn't stop the others, only the
// cancellation of ctx does.
func Check(ctx context.Context, paths []string, opts *nbt.Options, jobs int) ([]CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CheckResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			n, err := checkFile(path, opts)
			results[i] = CheckResult{Path: path, Documents: n, Err: err}
			if err != nil {
				slog.Warn("invalid file", "path", path, "error", err)
			} else {
				slog.Debug("checked file", "path", path, "documents", n)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func checkFile(path string, opts *nbt.Options) (int, error) {
	f, err := OpenInput(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return ReadDocuments(f, opts, nil)
}
