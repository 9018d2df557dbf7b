package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/gofluff/internal/testutil"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/builtin"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newProject lays out root/.sqlfluff and root/models/{setup.cfg,.sqlfluff}.
func newProject(t *testing.T) (root, model string) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, filepath.Join(root, ".sqlfluff"), `[sqlfluff]
dialect = bigquery

[sqlfluff:rules]
max_line_length = 100

[sqlfluff:rules:L010]
capitalisation_policy = upper
`)
	writeFile(t, filepath.Join(root, "models", "setup.cfg"), `[metadata]
name = demo

[sqlfluff]
dialect = postgres
templater = raw
`)
	writeFile(t, filepath.Join(root, "models", ".sqlfluff"), `[sqlfluff]
dialect = snowflake

[sqlfluff:rules]
max_line_length = 120
`)
	model = filepath.Join(root, "models", "orders.sql")
	writeFile(t, model, "select 1\n")
	return root, model
}

func newTestLoader(t *testing.T, root string, opts ...LoaderOption) *Loader {
	t.Helper()
	base := []LoaderOption{
		WithWorkingDir(root),
		WithoutUserConfig(),
		WithEnvPrefix("GOFLUFF_TEST_"),
		WithLogger(testutil.NewTestLogger(t)),
	}
	return NewLoader(append(base, opts...)...)
}

func TestLoader_LayersProjectFiles(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root)

	cfg, err := loader.LoadForPath(context.Background(), model, nil)
	require.NoError(t, err)

	// .sqlfluff beats setup.cfg in the same directory; nearer beats outer.
	assert.Equal(t, "snowflake", cfg.GetString("dialect"))
	assert.Equal(t, "raw", cfg.GetString("templater"))
	assert.Equal(t, 120, cfg.GetInt("max_line_length", "rules"))
	// Keys set only in outer files survive.
	assert.Equal(t, "upper", cfg.GetString("capitalisation_policy", "rules", "L010"))
	// Defaults fill the rest.
	assert.Equal(t, 4, cfg.GetInt("tab_space_size", "rules"))

	var kinds []SourceKind
	var paths []string
	for _, s := range cfg.Sources() {
		kinds = append(kinds, s.Kind)
		paths = append(paths, s.Path)
	}
	assert.Equal(t, []SourceKind{SourceDefault, SourceProject, SourceProject, SourceProject}, kinds)
	assert.Equal(t, []string{
		"default_config.cfg",
		filepath.Join(root, ".sqlfluff"),
		filepath.Join(root, "models", "setup.cfg"),
		filepath.Join(root, "models", ".sqlfluff"),
	}, paths)
}

func TestLoader_OuterPathSeesOnlyOuterFiles(t *testing.T) {
	root, _ := newProject(t)
	loader := newTestLoader(t, root)

	cfg, err := loader.LoadForPath(context.Background(), filepath.Join(root, "top.sql"), nil)
	require.NoError(t, err)
	assert.Equal(t, "bigquery", cfg.GetString("dialect"))
	assert.Equal(t, 100, cfg.GetInt("max_line_length", "rules"))
}

func TestLoader_DirectoryTarget(t *testing.T) {
	root, _ := newProject(t)
	loader := newTestLoader(t, root)

	cfg, err := loader.LoadForPath(context.Background(), filepath.Join(root, "models"), nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.GetString("dialect"))
}

func TestLoader_Overrides(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root)

	cfg, err := loader.LoadForPath(context.Background(), model, map[string]any{
		"dialect":               "tsql",
		"rules.max_line_length": 200,
	})
	require.NoError(t, err)
	assert.Equal(t, "tsql", cfg.GetString("dialect"))
	assert.Equal(t, 200, cfg.GetInt("max_line_length", "rules"))

	_, err = loader.LoadForPath(context.Background(), model, map[string]any{"dialect": "nope"})
	var uerr *UnknownDialectError
	require.ErrorAs(t, err, &uerr)
}

func TestLoader_UserConfig(t *testing.T) {
	root, model := newProject(t)
	userDir := t.TempDir()
	writeFile(t, filepath.Join(userDir, ".sqlfluff"), "[sqlfluff]\nnocolor = True\ndialect = mysql\n")

	loader := NewLoader(
		WithWorkingDir(root),
		WithUserConfigDir(userDir),
		WithEnvPrefix("GOFLUFF_TEST_"),
	)

	dirs, err := loader.ConfigDirs(model)
	require.NoError(t, err)
	assert.Equal(t, []string{userDir, root, filepath.Join(root, "models")}, dirs)

	cfg, err := loader.LoadForPath(context.Background(), model, nil)
	require.NoError(t, err)
	assert.True(t, cfg.GetBool("nocolor"))
	// Project files override the user layer.
	assert.Equal(t, "snowflake", cfg.GetString("dialect"))
	assert.Equal(t, SourceUser, cfg.Sources()[1].Kind)
}

func TestLoader_Pyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), `[project]
name = "demo"

[tool.sqlfluff]
dialect = "duckdb"

[tool.sqlfluff.indentation]
indented_joins = true

[tool.sqlfluff.rules]
max_line_length = 90
exclude = ["a", "b"]

[tool.sqlfluff.rules.L010]
capitalisation_policy = "lower"
`)
	writeFile(t, filepath.Join(root, ".sqlfluff"), "[sqlfluff:rules]\nmax_line_length = 70\ntab_space_size = 2\n")

	loader := newTestLoader(t, root)
	cfg, err := loader.LoadForPath(context.Background(), filepath.Join(root, "q.sql"), nil)
	require.NoError(t, err)

	assert.Equal(t, "duckdb", cfg.GetString("dialect"))
	assert.True(t, cfg.GetBool("indented_joins", "indentation"))
	// pyproject.toml is read after .sqlfluff.
	assert.Equal(t, 90, cfg.Get("max_line_length", "rules"))
	assert.Equal(t, 2, cfg.GetInt("tab_space_size", "rules"))
	assert.Equal(t, []string{"a", "b"}, cfg.GetStringSlice("exclude", "rules"))
	assert.Equal(t, "lower", cfg.GetString("capitalisation_policy", "rules", "L010"))
}

func TestParsePyproject(t *testing.T) {
	t.Run("core table", func(t *testing.T) {
		got, err := parsePyproject([]byte("[tool.sqlfluff.core]\ndialect = \"hive\"\nrules = \"None\"\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"core": map[string]any{"dialect": "hive", "rules": nil}}, got)
	})

	t.Run("no sqlfluff table", func(t *testing.T) {
		got, err := parsePyproject([]byte("[tool.black]\nline-length = 88\n"))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := parsePyproject([]byte("[tool.sqlfluff\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing pyproject.toml")
	})
}

func TestLoader_ExtraConfig(t *testing.T) {
	root, model := newProject(t)
	extraYAML := filepath.Join(t.TempDir(), "ci.yaml")
	writeFile(t, extraYAML, "core:\n  dialect: redshift\nrules:\n  max_line_length: 160\n")
	extraCfg := filepath.Join(t.TempDir(), "ci.cfg")
	writeFile(t, extraCfg, "[sqlfluff:rules]\nmax_line_length = 140\ntab_space_size = 8\n")

	loader := newTestLoader(t, root, WithExtraConfig(extraCfg, extraYAML))
	cfg, err := loader.LoadForPath(context.Background(), model, nil)
	require.NoError(t, err)

	assert.Equal(t, "redshift", cfg.GetString("dialect"))
	assert.Equal(t, 160, cfg.GetInt("max_line_length", "rules"))
	assert.Equal(t, 8, cfg.GetInt("tab_space_size", "rules"))

	sources := cfg.Sources()
	assert.Equal(t, SourceFile, sources[len(sources)-1].Kind)
	assert.Equal(t, extraYAML, sources[len(sources)-1].Path)
}

func TestLoader_MissingExtraConfig(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root, WithExtraConfig(filepath.Join(root, "missing.cfg")))

	_, err := loader.LoadForPath(context.Background(), model, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_Environment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".sqlfluff"), `[sqlfluff]
dialect = ansi

[sqlfluff:templater:jinja:context]
schema = ${GOFLUFF_LOADER_SCHEMA}
target = ${GOFLUFF_LOADER_TARGET}
missing = ${GOFLUFF_LOADER_UNSET}
`)
	writeFile(t, filepath.Join(root, ".env"), `GOFLUFF_TEST_DIALECT=mysql
GOFLUFF_TEST_TEMPLATER=python
GOFLUFF_LOADER_TARGET=from_dotenv
GOFLUFF_LOADER_SCHEMA=ignored
`)
	t.Setenv("GOFLUFF_LOADER_SCHEMA", "analytics")
	t.Setenv("GOFLUFF_TEST_DIALECT", "postgres")
	t.Setenv("GOFLUFF_TEST_RULES__MAX_LINE_LENGTH", "150")

	loader := newTestLoader(t, root)
	cfg, err := loader.LoadForPath(context.Background(), filepath.Join(root, "q.sql"), nil)
	require.NoError(t, err)

	// Process environment beats .env, which beats config files.
	assert.Equal(t, "postgres", cfg.GetString("dialect"))
	assert.Equal(t, "python", cfg.GetString("templater"))
	assert.Equal(t, 150, cfg.Get("max_line_length", "rules"))

	assert.Equal(t, "analytics", cfg.GetString("schema", "templater", "jinja", "context"))
	assert.Equal(t, "from_dotenv", cfg.GetString("target", "templater", "jinja", "context"))
	assert.Equal(t, "${GOFLUFF_LOADER_UNSET}", cfg.GetString("missing", "templater", "jinja", "context"))

	var envLayers int
	for _, s := range cfg.Sources() {
		if s.Kind == SourceEnv {
			envLayers++
		}
	}
	assert.Equal(t, 2, envLayers)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"GOFLUFF_DIALECT", "core.dialect"},
		{"GOFLUFF_RULES__MAX_LINE_LENGTH", "rules.max_line_length"},
		{"GOFLUFF_RULES__L010__CAPITALISATION_POLICY", "rules.L010.capitalisation_policy"},
		{"GOFLUFF_TEMPLATER__JINJA__APPLY_DBT_BUILTINS", "templater.jinja.apply_dbt_builtins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(DefaultEnvPrefix, tt.name))
		})
	}
}

func TestLoader_ParseErrorNamesFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".sqlfluff")
	writeFile(t, path, "[sqlfluff]\nnot a setting\n")

	loader := newTestLoader(t, root)
	_, err := loader.LoadForPath(context.Background(), filepath.Join(root, "q.sql"), nil)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.File)
	assert.Equal(t, 2, perr.Line)
}

func TestLoader_Cache(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root)
	ctx := context.Background()

	cfg, err := loader.LoadForPath(ctx, model, nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.GetString("dialect"))

	writeFile(t, filepath.Join(root, "models", ".sqlfluff"), "[sqlfluff]\ndialect = sqlite\n")

	cfg, err = loader.LoadForPath(ctx, model, nil)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.GetString("dialect"), "cached result expected")

	loader.ClearCache()
	cfg, err = loader.LoadForPath(ctx, model, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.GetString("dialect"))
}

func TestLoader_ConcurrentLoads(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root)

	var g errgroup.Group
	results := make([]*FluffConfig, 16)
	for i := range results {
		g.Go(func() error {
			cfg, err := loader.LoadForPath(context.Background(), model, nil)
			results[i] = cfg
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, cfg := range results {
		assert.Equal(t, "snowflake", cfg.GetString("dialect"))
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	root, model := newProject(t)
	loader := newTestLoader(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loader.LoadForPath(ctx, model, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestIntermediateDirs(t *testing.T) {
	sep := string(filepath.Separator)
	root := sep + filepath.Join("srv", "project")

	tests := []struct {
		name  string
		outer string
		inner string
		want  []string
	}{
		{
			name:  "same directory",
			outer: root,
			inner: root,
			want:  []string{root},
		},
		{
			name:  "nested",
			outer: root,
			inner: filepath.Join(root, "a", "b"),
			want:  []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")},
		},
		{
			name:  "sibling walks from common ancestor",
			outer: filepath.Join(root, "x"),
			inner: filepath.Join(root, "y"),
			want:  []string{root, filepath.Join(root, "y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intermediateDirs(tt.outer, tt.inner))
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	assert.Equal(t, root, FindProjectRoot(deep))

	writeFile(t, filepath.Join(root, "a", "tox.ini"), "[tox]\n")
	assert.Equal(t, filepath.Join(root, "a"), FindProjectRoot(deep))

	tooDeep := root
	for _, part := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"} {
		tooDeep = filepath.Join(tooDeep, part)
	}
	require.NoError(t, os.MkdirAll(tooDeep, 0o755))
	assert.Equal(t, "", FindProjectRoot(tooDeep))
}
