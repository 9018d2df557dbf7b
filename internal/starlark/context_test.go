package starlark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestNewExecutionContext(t *testing.T) {
	ctx, err := NewExecutionContext(map[string]any{
		"schema": "analytics",
		"cols":   []string{"id", "name"},
	})
	require.NoError(t, err)

	globals := ctx.Globals()
	for _, key := range []string{"true", "false", "none", "schema", "cols"} {
		_, ok := globals[key]
		assert.True(t, ok, "global %q not found", key)
	}
	_, ok := globals["ref"]
	assert.False(t, ok, "dbt builtins are opt-in")
}

func TestNewExecutionContext_UnsupportedValue(t *testing.T) {
	_, err := NewExecutionContext(map[string]any{"x": struct{}{}})
	assert.ErrorContains(t, err, "template context")
}

func TestExecutionContext_Eval(t *testing.T) {
	ctx, err := NewExecutionContext(map[string]any{
		"schema": "analytics",
		"n":      2,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		expr    string
		locals  starlark.StringDict
		want    string
		wantErr bool
	}{
		{name: "global", expr: "schema", want: "analytics"},
		{name: "arithmetic", expr: "n * 3", want: "6"},
		{name: "jinja literal", expr: "true and not false", want: "True"},
		{name: "none prints its name", expr: "none", want: "None"},
		{name: "local", expr: "col", locals: starlark.StringDict{"col": starlark.String("id")}, want: "id"},
		{name: "local shadows global", expr: "schema", locals: starlark.StringDict{"schema": starlark.String("s")}, want: "s"},
		{name: "undefined", expr: "missing", wantErr: true},
		{name: "syntax error", expr: "1 +", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread := ctx.Thread(tt.name)
			defer ctx.Release(thread)

			got, err := ctx.EvalString(thread, tt.expr, "test.sql", 3, tt.locals)
			if tt.wantErr {
				var evalErr *EvalError
				require.True(t, errors.As(err, &evalErr), "want *EvalError, got %T", err)
				assert.Equal(t, 3, evalErr.Line)
				assert.Equal(t, tt.expr, evalErr.Expr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecutionContext_FrozenGlobals(t *testing.T) {
	ctx, err := NewExecutionContext(map[string]any{"cols": []string{"a"}})
	require.NoError(t, err)

	thread := ctx.Thread("test")
	defer ctx.Release(thread)

	_, err = ctx.Eval(thread, `cols.append("b")`, "test.sql", 1, nil)
	assert.Error(t, err, "shared globals must be immutable")
}

func TestExecutionContext_AddGlobals(t *testing.T) {
	ctx, err := NewExecutionContext(nil)
	require.NoError(t, err)

	require.NoError(t, ctx.AddGlobals(starlark.StringDict{"greeting": starlark.String("hi")}))
	assert.Equal(t, starlark.String("hi"), ctx.Globals()["greeting"])

	err = ctx.AddGlobals(starlark.StringDict{"true": starlark.False})
	assert.ErrorContains(t, err, "conflicts")
}

func TestEvalError_Error(t *testing.T) {
	withLine := &EvalError{File: "a.sql", Line: 4, Expr: "x", Message: "undefined: x"}
	assert.Equal(t, `a.sql:4: error evaluating "x": undefined: x`, withLine.Error())

	noLine := &EvalError{File: "a.sql", Expr: "x", Message: "boom"}
	assert.Equal(t, `a.sql: error evaluating "x": boom`, noLine.Error())
}
