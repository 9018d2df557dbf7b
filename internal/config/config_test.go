package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/builtin"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name    string
		key     string
		section []string
		want    any
	}{
		{name: "dialect", key: "dialect", want: "ansi"},
		{name: "templater", key: "templater", want: "jinja"},
		{name: "verbose", key: "verbose", want: 0},
		{name: "nocolor", key: "nocolor", want: false},
		{name: "rules unset", key: "rules", want: nil},
		{name: "runaway limit", key: "runaway_limit", want: 10},
		{name: "output line length", key: "output_line_length", want: 80},
		{name: "encoding", key: "encoding", want: "autodetect"},
		{name: "indented joins", key: "indented_joins", section: []string{"indentation"}, want: false},
		{name: "indented using on", key: "indented_using_on", section: []string{"indentation"}, want: true},
		{name: "unwrap wrapped queries", key: "unwrap_wrapped_queries", section: []string{"templater"}, want: true},
		{name: "dbt builtins", key: "apply_dbt_builtins", section: []string{"templater", "jinja"}, want: true},
		{name: "tab space size", key: "tab_space_size", section: []string{"rules"}, want: 4},
		{name: "comma style", key: "comma_style", section: []string{"rules"}, want: "trailing"},
		{name: "L010 policy", key: "capitalisation_policy", section: []string{"rules", "L010"}, want: "consistent"},
		{name: "L014 policy", key: "extended_capitalisation_policy", section: []string{"rules", "L014"}, want: "consistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Get(tt.key, tt.section...))
		})
	}
}

func TestDefaults_Macros(t *testing.T) {
	macros := Defaults().GetSection("templater", "jinja", "macros")
	require.NotNil(t, macros)

	for _, name := range []string{"dbt_ref", "dbt_source", "dbt_config", "dbt_var", "dbt_is_incremental"} {
		assert.Contains(t, macros, name)
	}
	assert.Equal(t, "{% macro ref(model_ref) %}{{model_ref}}{% endmacro %}", macros["dbt_ref"])
}

func TestDefaults_AreValid(t *testing.T) {
	assert.Empty(t, Validate(Defaults()))
	assert.Contains(t, DefaultConfigText(), "[sqlfluff:rules]")
}

func TestFluffConfig_TypedGetters(t *testing.T) {
	cfg, err := New(map[string]any{
		"core": map[string]any{
			"rules":     "L010, L014",
			"nocolor":   "True",
			"recurse":   "3",
			"verbosity": 1.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.GetString("dialect"))
	assert.Equal(t, "", cfg.GetString("exclude_rules"))
	assert.Equal(t, "80", cfg.GetString("max_line_length", "rules"))
	assert.Equal(t, 80, cfg.GetInt("max_line_length", "rules"))
	assert.Equal(t, 3, cfg.GetInt("recurse"))
	assert.Equal(t, 1, cfg.GetInt("verbosity"))
	assert.Equal(t, 0, cfg.GetInt("dialect"))
	assert.True(t, cfg.GetBool("nocolor"))
	assert.True(t, cfg.GetBool("allow_scalar", "rules"))
	assert.False(t, cfg.GetBool("missing"))
	assert.Equal(t, []string{"L010", "L014"}, cfg.GetStringSlice("rules"))
	assert.Equal(t, []string{".sql", ".sql.j2", ".dml", ".ddl"}, cfg.GetStringSlice("sql_file_exts"))
	assert.Empty(t, cfg.GetStringSlice("exclude_rules"))

	assert.True(t, cfg.Exists("exclude_rules"))
	assert.False(t, cfg.Exists("nope"))
}

func TestFluffConfig_GetSection(t *testing.T) {
	cfg := Defaults()

	l010 := cfg.GetSection("rules", "L010")
	require.NotNil(t, l010)
	assert.Equal(t, "consistent", l010["capitalisation_policy"])

	assert.Nil(t, cfg.GetSection("rules", "L999"))
	assert.Nil(t, cfg.GetSection("core", "dialect"))
	assert.Contains(t, cfg.GetSection(), "core")
}

func TestFluffConfig_SetIsCopyOnWrite(t *testing.T) {
	base := Defaults()

	changed, err := base.Set("bigquery", "dialect")
	require.NoError(t, err)
	assert.Equal(t, "bigquery", changed.GetString("dialect"))
	assert.Equal(t, "ansi", base.GetString("dialect"))

	nested, err := changed.Set("upper", "rules", "L010", "capitalisation_policy")
	require.NoError(t, err)
	assert.Equal(t, "upper", nested.GetString("capitalisation_policy", "rules", "L010"))
	assert.Equal(t, "consistent", changed.GetString("capitalisation_policy", "rules", "L010"))
	assert.Equal(t, "bigquery", nested.GetString("dialect"))

	_, err = base.Set("x")
	require.Error(t, err)
}

func TestFluffConfig_WithOverrides(t *testing.T) {
	base := Defaults()

	t.Run("empty returns receiver", func(t *testing.T) {
		got, err := base.WithOverrides(nil)
		require.NoError(t, err)
		assert.Same(t, base, got)
	})

	t.Run("core and dotted keys", func(t *testing.T) {
		got, err := base.WithOverrides(map[string]any{
			"dialect":                          "postgres",
			"rules.max_line_length":            "120",
			"rules.L010.capitalisation_policy": "lower",
			"exclude_rules":                    "L001,L002",
		})
		require.NoError(t, err)

		assert.Equal(t, "postgres", got.GetString("dialect"))
		assert.Equal(t, 120, got.Get("max_line_length", "rules"))
		assert.Equal(t, "lower", got.GetString("capitalisation_policy", "rules", "L010"))
		assert.Equal(t, []string{"L001", "L002"}, got.GetStringSlice("exclude_rules"))
		// Sibling keys survive the nested merge.
		assert.Equal(t, 4, got.GetInt("tab_space_size", "rules"))
		assert.Equal(t, "ansi", base.GetString("dialect"))

		sources := got.Sources()
		assert.Equal(t, SourceOverride, sources[len(sources)-1].Kind)
		assert.Equal(t, 4, sources[len(sources)-1].Keys)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := base.WithOverrides(map[string]any{"dialect": "oracle9"})
		require.Error(t, err)

		var uerr *UnknownDialectError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "oracle9", uerr.Name)
		assert.Contains(t, uerr.Available, "ansi")
		assert.Contains(t, err.Error(), `unknown dialect "oracle9"`)
	})
}

func TestFluffConfig_Dialect(t *testing.T) {
	d, err := Defaults().Dialect()
	require.NoError(t, err)
	assert.Equal(t, "ansi", d.Name)

	unset, err := New(map[string]any{"core": map[string]any{"dialect": nil}})
	require.NoError(t, err)
	_, err = unset.Dialect()
	require.ErrorIs(t, err, dialect.ErrDialectRequired)

	unknown, err := New(map[string]any{"core": map[string]any{"dialect": "nope"}})
	require.NoError(t, err)
	_, err = unknown.Dialect()
	var uerr *UnknownDialectError
	require.ErrorAs(t, err, &uerr)
}

func TestFluffConfig_TypedSections(t *testing.T) {
	cfg, err := New(map[string]any{
		"core": map[string]any{"rules": "L010,L014", "ignore": "parsing"},
		"templater": map[string]any{
			"jinja": map[string]any{
				"context": map[string]any{"schema": "analytics"},
			},
		},
	})
	require.NoError(t, err)

	core, err := cfg.Core()
	require.NoError(t, err)
	assert.Equal(t, "ansi", core.Dialect)
	assert.Equal(t, "jinja", core.Templater)
	assert.Equal(t, []string{"L010", "L014"}, core.Rules)
	assert.Empty(t, core.ExcludeRules)
	assert.Equal(t, []string{"parsing"}, core.Ignore)
	assert.Equal(t, []string{".sql", ".sql.j2", ".dml", ".ddl"}, core.SQLFileExts)
	assert.Equal(t, 80, core.OutputLineLength)
	assert.True(t, core.IgnoreTemplatedAreas)

	ind, err := cfg.Indentation()
	require.NoError(t, err)
	assert.Equal(t, Indentation{IndentedUsingOn: true, TemplateBlocksIndent: true}, ind)

	tmpl, err := cfg.Templater()
	require.NoError(t, err)
	assert.True(t, tmpl.UnwrapWrappedQueries)
	assert.True(t, tmpl.Jinja.ApplyDBTBuiltins)
	assert.Len(t, tmpl.Jinja.Macros, 5)
	assert.Equal(t, "analytics", tmpl.Jinja.Context["schema"])
}

func TestFluffConfig_Iter(t *testing.T) {
	entries := Defaults().Iter()
	require.NotEmpty(t, entries)

	assert.Equal(t, Entry{Depth: 0, Path: "core", Key: "core", Section: true}, entries[0])
	assert.Equal(t, Entry{Depth: 1, Path: "core.dialect", Key: "dialect", Value: "ansi"}, entries[1])

	// Within the rules section plain values precede nested rule sections.
	var sawRuleSection bool
	for _, e := range entries {
		if e.Depth != 1 || len(e.Path) < len("rules.") || e.Path[:len("rules.")] != "rules." {
			continue
		}
		if e.Section {
			sawRuleSection = true
			continue
		}
		assert.False(t, sawRuleSection, "value %s listed after a nested section", e.Path)
	}
	assert.True(t, sawRuleSection)
}

func TestFluffConfig_Diff(t *testing.T) {
	cfg, err := New(map[string]any{
		"core":  map[string]any{"dialect": "bigquery", "templater": "jinja"},
		"rules": map[string]any{"L010": map[string]any{"capitalisation_policy": "upper"}},
		"extra": map[string]any{"key": 1},
	})
	require.NoError(t, err)

	want := []Entry{
		{Depth: 1, Path: "core.dialect", Key: "dialect", Value: "bigquery"},
		{Depth: 1, Path: "extra.key", Key: "key", Value: 1},
		{Depth: 2, Path: "rules.L010.capitalisation_policy", Key: "capitalisation_policy", Value: "upper"},
	}
	assert.Equal(t, want, cfg.Diff(Defaults()))
	assert.Empty(t, Defaults().Diff(Defaults()))
}

func TestFluffConfig_Sources(t *testing.T) {
	sources := Defaults().Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, SourceDefault, sources[0].Kind)
	assert.Equal(t, "default_config.cfg", sources[0].Path)
	assert.Positive(t, sources[0].Keys)

	cfg, err := New(map[string]any{"core": map[string]any{"dialect": "mysql"}})
	require.NoError(t, err)
	assert.Len(t, cfg.Sources(), 2)
	assert.Len(t, Defaults().Sources(), 1)
}
