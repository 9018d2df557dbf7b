package templater

import (
	"context"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Raw passes files through unchanged.
type Raw struct{}

// Name implements Templater.
func (Raw) Name() string { return "raw" }

// Description implements Templater.
func (Raw) Description() string { return "no templating; the file is linted as written" }

// Process implements Templater.
func (Raw) Process(ctx context.Context, in, fname string, _ *config.FluffConfig) (*TemplatedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return literalFile(in, fname), nil
}
