// Package commands implements the gofluff subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/config"
	"github.com/leapstack-labs/gofluff/internal/cli/output"
	intconfig "github.com/leapstack-labs/gofluff/internal/config"
)

// CommandContext holds the shared state of a command invocation.
type CommandContext struct {
	Settings *config.Settings
	Logger   *slog.Logger
	Renderer *output.Renderer
	Loader   *intconfig.Loader
}

// NewCommandContext builds the context from the settings and logger the
// root command stored.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	settings := config.GetSettings(ctx)
	logger := config.GetLogger(ctx)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(settings.Output))
	r.SetNoColor(settings.NoColor)

	return &CommandContext{
		Settings: settings,
		Logger:   logger,
		Renderer: r,
		Loader: intconfig.NewLoader(
			intconfig.WithLogger(logger),
			intconfig.WithExtraConfig(settings.ConfigFiles...),
		),
	}
}

// LoadConfig returns the configuration for path with the flag overrides
// applied.
func (c *CommandContext) LoadConfig(ctx context.Context, path string) (*intconfig.FluffConfig, error) {
	if path == "" {
		path = "."
	}
	return c.Loader.LoadForPath(ctx, path, c.Settings.Overrides)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
