package starlark

import (
	"fmt"
	"maps"
	"sync"

	"go.starlark.net/starlark"
)

// ExecutionContext holds the globals shared by every expression of a render:
// the jinja literals, optional dbt builtins, configured context variables and
// macros loaded from configuration.
type ExecutionContext struct {
	globals starlark.StringDict
	pool    *ThreadPool
	mu      sync.RWMutex
}

// ContextOption configures an ExecutionContext.
type ContextOption func(*ExecutionContext)

// WithDBTBuiltins predeclares ref, source, config, var, is_incremental and this.
func WithDBTBuiltins() ContextOption {
	return func(ctx *ExecutionContext) {
		maps.Copy(ctx.globals, DBTBuiltins())
	}
}

// WithThreadPool shares a thread pool between contexts.
func WithThreadPool(pool *ThreadPool) ContextOption {
	return func(ctx *ExecutionContext) {
		ctx.pool = pool
	}
}

// NewExecutionContext creates a context whose globals are vars converted to
// Starlark on top of the jinja literals.
func NewExecutionContext(vars map[string]any, opts ...ContextOption) (*ExecutionContext, error) {
	ctx := &ExecutionContext{globals: JinjaLiterals()}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.pool == nil {
		ctx.pool = NewThreadPool(DefaultPoolSize)
	}

	converted, err := StringDict(vars)
	if err != nil {
		return nil, fmt.Errorf("template context: %w", err)
	}
	maps.Copy(ctx.globals, converted)
	ctx.globals.Freeze()
	return ctx, nil
}

// Globals returns a snapshot of the global dictionary.
func (ctx *ExecutionContext) Globals() starlark.StringDict {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return maps.Clone(ctx.globals)
}

// AddGlobals merges values into the globals. The jinja literal names are
// reserved. Values are frozen since renders share them across goroutines.
func (ctx *ExecutionContext) AddGlobals(values starlark.StringDict) error {
	reserved := JinjaLiterals()
	for name := range values {
		if _, ok := reserved[name]; ok {
			return fmt.Errorf("global %q conflicts with a builtin literal", name)
		}
	}

	values.Freeze()
	ctx.mu.Lock()
	maps.Copy(ctx.globals, values)
	ctx.mu.Unlock()
	return nil
}

// Thread takes a thread from the pool; hand it back with Release.
func (ctx *ExecutionContext) Thread(name string) *starlark.Thread {
	return ctx.pool.Get(name)
}

// Release returns a thread obtained from Thread.
func (ctx *ExecutionContext) Release(thread *starlark.Thread) {
	ctx.pool.Put(thread)
}

// Eval evaluates a single expression on thread. Locals shadow globals.
func (ctx *ExecutionContext) Eval(thread *starlark.Thread, expr, filename string, line int, locals starlark.StringDict) (starlark.Value, error) {
	ctx.mu.RLock()
	env := make(starlark.StringDict, len(ctx.globals)+len(locals))
	maps.Copy(env, ctx.globals)
	ctx.mu.RUnlock()
	maps.Copy(env, locals)

	result, err := starlark.Eval(thread, filename, expr, env) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return nil, &EvalError{
			File:    filename,
			Line:    line,
			Expr:    expr,
			Message: evalMessage(err),
			cause:   err,
		}
	}
	return result, nil
}

// EvalString evaluates expr and renders the result as template text.
func (ctx *ExecutionContext) EvalString(thread *starlark.Thread, expr, filename string, line int, locals starlark.StringDict) (string, error) {
	v, err := ctx.Eval(thread, expr, filename, line, locals)
	if err != nil {
		return "", err
	}
	return ToText(v), nil
}

func evalMessage(err error) string {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return evalErr.Msg
	}
	return err.Error()
}

// EvalError represents an error during expression evaluation.
type EvalError struct {
	File    string
	Line    int
	Expr    string
	Message string
	cause   error
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: error evaluating %q: %s", e.File, e.Line, e.Expr, e.Message)
	}
	return fmt.Sprintf("%s: error evaluating %q: %s", e.File, e.Expr, e.Message)
}

func (e *EvalError) Unwrap() error { return e.cause }
