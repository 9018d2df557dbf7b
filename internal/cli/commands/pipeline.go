package commands

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	intconfig "github.com/leapstack-labs/gofluff/internal/config"
	"github.com/leapstack-labs/gofluff/internal/paths"
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

// renderedFile is one file after config resolution and templating.
type renderedFile struct {
	Path   string
	Config *intconfig.FluffConfig
	File   *templater.TemplatedFile
}

// fileResult pairs a processed file with its outcome.
type fileResult[T any] struct {
	Path  string
	Value T
	Err   error
}

// collectFiles expands each argument using the sql_file_exts that apply
// to it. A file reachable from several arguments is listed once.
func (c *CommandContext) collectFiles(ctx context.Context, args []string) ([]string, error) {
	return paths.ExpandAll(args, func(arg string) ([]string, error) {
		cfg, err := c.LoadConfig(ctx, arg)
		if err != nil {
			return nil, err
		}
		return cfg.GetStringSlice("sql_file_exts"), nil
	})
}

// renderFile loads the config for path, decodes the file, applies inline
// directives and templates it.
func (c *CommandContext) renderFile(ctx context.Context, path string) (*renderedFile, error) {
	cfg, err := c.LoadConfig(ctx, path)
	if err != nil {
		return nil, err
	}
	src, err := paths.ReadFile(path, cfg.GetString("encoding"))
	if err != nil {
		return nil, err
	}
	cfg, err = cfg.ForFile(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tf, err := templater.Render(ctx, src, path, cfg)
	if err != nil {
		return nil, err
	}
	return &renderedFile{Path: path, Config: cfg, File: tf}, nil
}

// processFiles renders every file under args concurrently and applies fn
// to each. Results keep the sorted file order. Per-file failures are
// recorded in the results; the returned error covers setup failures and
// cancellation.
func processFiles[T any](ctx context.Context, c *CommandContext, args []string, fn func(context.Context, *renderedFile) (T, error)) ([]fileResult[T], error) {
	files, err := c.collectFiles(ctx, args)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("processing files", "count", len(files))

	results := make([]fileResult[T], len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			results[i].Path = path
			rf, err := c.renderFile(gctx, path)
			if err == nil {
				results[i].Value, err = fn(gctx, rf)
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// failed counts the results that carry an error.
func failed[T any](results []fileResult[T]) error {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d file(s) failed", n, len(results))
}
