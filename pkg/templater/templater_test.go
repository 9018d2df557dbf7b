package templater

import (
	"context"
	"errors"
	"testing"

	"github.com/leapstack-labs/gofluff/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, values map[string]any) *config.FluffConfig {
	t.Helper()
	if values == nil {
		values = map[string]any{}
	}
	cfg, err := config.New(values)
	require.NoError(t, err)
	return cfg
}

func withTemplater(name string, extra map[string]any) map[string]any {
	values := map[string]any{"core": map[string]any{"templater": name}}
	if extra != nil {
		values["templater"] = extra
	}
	return values
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"jinja", "python", "raw"}, List())

	for _, name := range List() {
		tmpl, ok := Get(name)
		require.True(t, ok, "templater %q", name)
		assert.Equal(t, name, tmpl.Name())
		assert.NotEmpty(t, tmpl.Description())
	}

	_, ok := Get("RAW")
	assert.True(t, ok, "lookup is case-insensitive")

	all := All()
	require.Len(t, all, 3)
	assert.Equal(t, "jinja", all[0].Name())
}

func TestForConfig(t *testing.T) {
	tmpl, err := ForConfig(config.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "jinja", tmpl.Name(), "jinja is the default templater")

	_, err = ForConfig(newConfig(t, withTemplater("mustache", nil)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTemplater))
	assert.Contains(t, err.Error(), `"mustache"`)
	assert.Contains(t, err.Error(), "jinja, python, raw")
}

func TestRaw(t *testing.T) {
	cfg := newConfig(t, withTemplater("raw", nil))
	in := "SELECT {{ not_rendered }}"

	f, err := Render(context.Background(), in, "a.sql", cfg)
	require.NoError(t, err)
	assert.Equal(t, in, f.Templated)
	assert.Equal(t, []Slice{{Kind: SliceLiteral, SourceEnd: len(in), TemplatedEnd: len(in)}}, f.Slices)

	empty, err := Raw{}.Process(context.Background(), "", "empty.sql", cfg)
	require.NoError(t, err)
	assert.Empty(t, empty.Slices)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, "SELECT 1", "a.sql", config.Defaults())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPython(t *testing.T) {
	cfg := newConfig(t, withTemplater("python", map[string]any{
		"python": map[string]any{"context": map[string]any{
			"tbl":   "orders",
			"limit": 10,
			"flag":  true,
		}},
	}))

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "placeholders", input: "SELECT * FROM {tbl} LIMIT {limit}", want: "SELECT * FROM orders LIMIT 10"},
		{name: "bool", input: "SELECT {flag}", want: "SELECT True"},
		{name: "case folded lookup", input: "SELECT * FROM {TBL}", want: "SELECT * FROM orders"},
		{name: "escaped braces", input: "SELECT '{{x}}'", want: "SELECT '{x}'"},
		{name: "missing key", input: "SELECT {nope}", wantErr: "undefined placeholder {nope}"},
		{name: "unmatched open", input: "SELECT {tbl", wantErr: "unmatched '{'"},
		{name: "single close", input: "SELECT }", wantErr: "single '}'"},
		{name: "empty placeholder", input: "SELECT {}", wantErr: "invalid placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Python{}.Process(context.Background(), tt.input, "q.sql", cfg)
			if tt.wantErr != "" {
				var renderErr *RenderError
				require.ErrorAs(t, err, &renderErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, 1, renderErr.Line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Templated)
		})
	}
}

func TestPython_Slices(t *testing.T) {
	cfg := newConfig(t, withTemplater("python", map[string]any{
		"python": map[string]any{"context": map[string]any{"tbl": "orders"}},
	}))
	in := "SELECT * FROM {tbl} WHERE 1"

	f, err := Python{}.Process(context.Background(), in, "q.sql", cfg)
	require.NoError(t, err)
	require.Len(t, f.Slices, 3)

	assert.Equal(t, Slice{Kind: SliceLiteral, SourceStart: 0, SourceEnd: 14, TemplatedStart: 0, TemplatedEnd: 14}, f.Slices[0])
	assert.Equal(t, Slice{Kind: SliceTemplated, SourceStart: 14, SourceEnd: 19, TemplatedStart: 14, TemplatedEnd: 20}, f.Slices[1])
	assert.Equal(t, Slice{Kind: SliceLiteral, SourceStart: 19, SourceEnd: len(in), TemplatedStart: 20, TemplatedEnd: len(f.Templated)}, f.Slices[2])

	assert.Equal(t, 14, f.SourceOffset(16), "templated region maps to the placeholder")
	assert.Equal(t, 20, f.SourceOffset(21))
	assert.True(t, f.IsTemplated(15))
	assert.False(t, f.IsTemplated(2))
}

func TestPython_EscapedBraceSlices(t *testing.T) {
	cfg := newConfig(t, withTemplater("python", map[string]any{
		"python": map[string]any{"context": map[string]any{"x": "1"}},
	}))
	in := "a{{b {x} c}}"

	f, err := Python{}.Process(context.Background(), in, "q.sql", cfg)
	require.NoError(t, err)
	assert.Equal(t, "a{b 1 c}", f.Templated)
	assert.Equal(t, []Slice{
		{Kind: SliceLiteral, SourceStart: 0, SourceEnd: 1, TemplatedStart: 0, TemplatedEnd: 1},
		{Kind: SliceEscaped, SourceStart: 1, SourceEnd: 3, TemplatedStart: 1, TemplatedEnd: 2},
		{Kind: SliceLiteral, SourceStart: 3, SourceEnd: 5, TemplatedStart: 2, TemplatedEnd: 4},
		{Kind: SliceTemplated, SourceStart: 5, SourceEnd: 8, TemplatedStart: 4, TemplatedEnd: 5},
		{Kind: SliceLiteral, SourceStart: 8, SourceEnd: 10, TemplatedStart: 5, TemplatedEnd: 7},
		{Kind: SliceEscaped, SourceStart: 10, SourceEnd: 12, TemplatedStart: 7, TemplatedEnd: 8},
	}, f.Slices)

	tests := []struct {
		templated, source int
	}{
		{templated: 0, source: 0},
		{templated: 1, source: 1},
		{templated: 2, source: 3},
		{templated: 3, source: 4},
		{templated: 6, source: 9},
		{templated: 7, source: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.source, f.SourceOffset(tt.templated), "templated offset %d", tt.templated)
	}
	assert.False(t, f.IsTemplated(1), "escaped braces are literal text")
}

func TestJinja(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		"templater": map[string]any{
			"unwrap_wrapped_queries": false,
			"jinja": map[string]any{
				"context": map[string]any{"schema": "analytics", "cols": "id"},
				"macros": map[string]any{
					"quote": "{% macro q(x) %}\"{{ x }}\"{% endmacro %}",
				},
			},
		},
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "context", input: "SELECT * FROM {{ schema }}.t", want: "SELECT * FROM analytics.t"},
		{name: "configured macro", input: "SELECT {{ q('id') }}", want: `SELECT "id"`},
		{name: "default dbt macros", input: "SELECT * FROM {{ ref('orders') }}", want: "SELECT * FROM orders"},
		{name: "dbt source macro", input: "SELECT * FROM {{ source('raw', 'events') }}", want: "SELECT * FROM raw_events"},
		{name: "dbt this builtin", input: "SELECT * FROM {{ this }}", want: "SELECT * FROM this_model"},
		{name: "dbt config renders empty", input: "{{ config(materialized='table') }}SELECT 1", want: "SELECT 1"},
		{name: "is_incremental", input: "{% if is_incremental() %}1{% endif %}", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Render(context.Background(), tt.input, "model.sql", cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Templated)
			assert.Equal(t, tt.input, f.Source)
		})
	}
}

func TestJinja_WithoutDBTBuiltins(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		"templater": map[string]any{"jinja": map[string]any{"apply_dbt_builtins": false}},
	})

	_, err := Render(context.Background(), "SELECT * FROM {{ this }}", "model.sql", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined: this")
}

func TestJinja_Errors(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]any
		input    string
		wantFile string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "syntax error",
			input:    "SELECT\n{% if x %}",
			wantFile: "model.sql",
			wantLine: 2,
			wantMsg:  "missing 'endif'",
		},
		{
			name:     "undefined variable",
			input:    "SELECT\n\n  {{ nope }}",
			wantFile: "model.sql",
			wantLine: 3,
			wantMsg:  "undefined: nope",
		},
		{
			name: "broken configured macro",
			values: map[string]any{"templater": map[string]any{"jinja": map[string]any{
				"macros": map[string]any{"broken": "{% macro b() %}"},
			}}},
			input:    "SELECT 1",
			wantFile: "macros:broken",
			wantLine: 1,
			wantMsg:  "parsing macro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(t, tt.values)
			_, err := Render(context.Background(), tt.input, "model.sql", cfg)
			require.Error(t, err)

			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.wantFile, renderErr.File)
			assert.Equal(t, tt.wantLine, renderErr.Line)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestJinja_Slices(t *testing.T) {
	cfg := newConfig(t, map[string]any{"templater": map[string]any{"unwrap_wrapped_queries": false}})
	in := "SELECT {{ 1 + 1 }} {# c #}"

	f, err := Render(context.Background(), in, "model.sql", cfg)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2 ", f.Templated)

	kinds := make([]SliceKind, len(f.Slices))
	for i, s := range f.Slices {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []SliceKind{SliceLiteral, SliceTemplated, SliceLiteral, SliceComment}, kinds)
	assert.Equal(t, 7, f.SourceOffset(7))
}

func TestUnwrapWrappedQueries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "wrapped", input: "(SELECT 1)", want: "SELECT 1"},
		{name: "wrapped with whitespace", input: "\n  (SELECT a FROM t)\n", want: "SELECT a FROM t"},
		{name: "nested parens kept", input: "(SELECT (1 + 2))", want: "SELECT (1 + 2)"},
		{name: "two groups untouched", input: "(SELECT 1) UNION (SELECT 2)", want: "(SELECT 1) UNION (SELECT 2)"},
		{name: "paren in string", input: "(SELECT ')')", want: "SELECT ')'"},
		{name: "not wrapped", input: "SELECT (1)", want: "SELECT (1)"},
		{name: "empty", input: "", want: ""},
	}

	cfg := newConfig(t, withTemplater("raw", nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Render(context.Background(), tt.input, "q.sql", cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Templated)
			for _, s := range f.Slices {
				assert.LessOrEqual(t, s.TemplatedEnd, len(f.Templated))
			}
		})
	}
}

func TestLineCol(t *testing.T) {
	src := "ab\ncé\nx"
	line, col := lineCol(src, 0)
	assert.Equal(t, []int{1, 1}, []int{line, col})

	line, col = lineCol(src, 6) // after "é"
	assert.Equal(t, []int{2, 3}, []int{line, col})

	line, col = lineCol(src, 100)
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)
}
