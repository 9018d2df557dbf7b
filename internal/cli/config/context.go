package config

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/pflag"
)

type loggerKey struct{}

type settingsKey struct{}

// NewLogger returns a text logger on w. Verbosity 0 logs warnings, 1 adds
// info and 2 or more adds debug.
func NewLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose >= 2:
		level = slog.LevelDebug
	case verbose == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithSettings stores s in ctx.
func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// GetSettings retrieves the settings from the command context, falling
// back to the defaults.
func GetSettings(ctx context.Context) *Settings {
	if ctx != nil {
		if s, ok := ctx.Value(settingsKey{}).(*Settings); ok {
			return s
		}
	}
	s, _ := Load(nil)
	return s
}

// Init loads the settings from flags and stores them in ctx together with
// a logger writing to logOut at the requested verbosity.
func Init(ctx context.Context, flags *pflag.FlagSet, logOut io.Writer) (context.Context, error) {
	s, err := Load(flags)
	if err != nil {
		return ctx, err
	}
	ctx = WithSettings(ctx, s)
	return WithLogger(ctx, NewLogger(logOut, s.Verbose)), nil
}
