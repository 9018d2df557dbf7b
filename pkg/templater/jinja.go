package templater

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/leapstack-labs/gofluff/internal/config"
	starctx "github.com/leapstack-labs/gofluff/internal/starlark"
	"github.com/leapstack-labs/gofluff/internal/template"
)

// Jinja renders the jinja subset implemented by internal/template.
// Configured macros are loaded before every file and context values become
// globals; apply_dbt_builtins adds stand-ins for the dbt functions.
type Jinja struct {
	logger *slog.Logger
	pool   *starctx.ThreadPool
}

// NewJinja creates a jinja templater. A nil logger discards output.
func NewJinja(logger *slog.Logger) *Jinja {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Jinja{logger: logger, pool: starctx.NewThreadPool(starctx.DefaultPoolSize)}
}

// Name implements Templater.
func (*Jinja) Name() string { return "jinja" }

// Description implements Templater.
func (*Jinja) Description() string {
	return "jinja templates with starlark expressions, configured macros and optional dbt builtins"
}

// Process implements Templater.
func (j *Jinja) Process(ctx context.Context, in, fname string, cfg *config.FluffConfig) (*TemplatedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settings, err := cfg.Templater()
	if err != nil {
		return nil, err
	}

	env, err := j.environment(settings.Jinja)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.Parse(in, fname)
	if err != nil {
		return nil, renderError(fname, "parsing template", err)
	}
	res, err := template.NewRenderer(env, fname).Render(tmpl)
	if err != nil {
		return nil, renderError(fname, "rendering template", err)
	}

	f := &TemplatedFile{FileName: fname, Source: in, Templated: res.Output}
	for _, s := range res.Slices {
		f.Slices = append(f.Slices, Slice{
			Kind:           SliceKind(s.Kind),
			SourceStart:    s.Source.Start,
			SourceEnd:      s.Source.End,
			TemplatedStart: s.Templated.Start,
			TemplatedEnd:   s.Templated.End,
		})
	}
	j.logger.Debug("rendered template", "file", fname, "slices", len(f.Slices), "bytes", len(f.Templated))
	return f, nil
}

// environment builds the execution context: context values, optional dbt
// builtins, then the configured macros in name order.
func (j *Jinja) environment(settings config.JinjaSettings) (*starctx.ExecutionContext, error) {
	opts := []starctx.ContextOption{starctx.WithThreadPool(j.pool)}
	if settings.ApplyDBTBuiltins {
		opts = append(opts, starctx.WithDBTBuiltins())
	}
	env, err := starctx.NewExecutionContext(settings.Context, opts...)
	if err != nil {
		return nil, &RenderError{File: "templater:jinja:context", Msg: err.Error(), Cause: err}
	}

	names := make([]string, 0, len(settings.Macros))
	for name := range settings.Macros {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file := "macros:" + name
		tmpl, err := template.Parse(settings.Macros[name], file)
		if err != nil {
			return nil, renderError(file, "parsing macro", err)
		}
		defs, err := template.NewRenderer(env, file).Define(tmpl)
		if err != nil {
			return nil, renderError(file, "loading macro", err)
		}
		if err := env.AddGlobals(defs); err != nil {
			return nil, &RenderError{File: file, Msg: "loading macro: " + err.Error(), Cause: err}
		}
	}
	return env, nil
}

// renderError converts a positioned template error into a RenderError.
func renderError(fname, msg string, err error) error {
	var terr template.Error
	if !errors.As(err, &terr) {
		return &RenderError{File: fname, Msg: msg + ": " + err.Error(), Cause: err}
	}
	pos := terr.Position()
	file := pos.File
	if file == "" {
		file = fname
	}
	return &RenderError{File: file, Line: pos.Line, Column: pos.Column, Msg: msg + ": " + terr.Message(), Cause: err}
}
