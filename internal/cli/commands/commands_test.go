package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/internal/cli/config"
	"github.com/leapstack-labs/gofluff/internal/cli/testutil"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/builtin"
)

// newTestRoot mirrors the real root command: persistent flags plus the
// settings and logger set up before each subcommand runs.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "gofluff",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := config.Init(cmd.Context(), cmd.Root().PersistentFlags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}
	config.AddFlags(root.PersistentFlags())
	root.AddCommand(
		NewVersionCommand(BuildInfo{Version: "test"}),
		NewConfigCommand(),
		NewRulesCommand(),
		NewDialectsCommand(),
		NewTemplatersCommand(),
		NewRenderCommand(),
		NewParseCommand(),
	)
	return root
}

// execute runs args against a fresh root and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newTestRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// inProject creates the test project and makes it the working directory.
func inProject(t *testing.T) string {
	t.Helper()
	root := testutil.SetupTestProject(t)
	t.Chdir(root)
	return root
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewConfigCommand(), use: "config"},
		{cmd: NewRulesCommand(), use: "rules [code]", flags: []string{"group", "selected", "long"}},
		{cmd: NewDialectsCommand(), use: "dialects"},
		{cmd: NewTemplatersCommand(), use: "templaters"},
		{cmd: NewRenderCommand(), use: "render <paths...>", flags: []string{"slices"}},
		{cmd: NewParseCommand(), use: "parse <paths...>"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestDialectsCommand(t *testing.T) {
	inProject(t)

	out, _, err := execute(t, "dialects", "-o", "json")
	require.NoError(t, err)

	entries := decodeJSON[[]NamedEntry](t, out)
	names := make(map[string]NamedEntry, len(entries))
	for _, e := range entries {
		names[e.Name] = e
	}
	assert.Contains(t, names, "ansi")
	assert.Contains(t, names, "tsql")
	assert.Equal(t, "postgres", names["redshift"].Inherits)

	out, _, err = execute(t, "dialects", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Dialects")
	assert.Contains(t, out, "| bigquery")
	testutil.AssertNoANSI(t, out)
}

func TestTemplatersCommand(t *testing.T) {
	inProject(t)

	out, _, err := execute(t, "templaters", "-o", "yaml")
	require.NoError(t, err)
	for _, name := range []string{"name: jinja", "name: python", "name: raw"} {
		assert.Contains(t, out, name)
	}

	out, _, err = execute(t, "templaters", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Templaters")
	assert.Contains(t, out, "jinja")
}

func TestRenderCommand(t *testing.T) {
	root := inProject(t)

	t.Run("single file as text", func(t *testing.T) {
		out, _, err := execute(t, "render", "models/orders.sql", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "from analytics.orders")
		assert.NotContains(t, out, "{{")
	})

	t.Run("flag override of the templater", func(t *testing.T) {
		out, _, err := execute(t, "render", "models/orders.sql", "--templater", "raw", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "from {{ schema }}.orders")
	})

	t.Run("directory honours the ignore file", func(t *testing.T) {
		out, _, err := execute(t, "render", ".", "-o", "json")
		require.NoError(t, err)

		files := decodeJSON[[]RenderJSONOutput](t, out)
		var got []string
		for _, f := range files {
			got = append(got, f.File)
			assert.Empty(t, f.Error)
			assert.Equal(t, "jinja", f.Templater)
		}
		assert.Equal(t, []string{"models/customers.sql", "models/orders.sql", "models/staging/stg_events.sql"}, got)
	})

	t.Run("overlapping arguments render each file once", func(t *testing.T) {
		out, _, err := execute(t, "render", "models", "./models/orders.sql", "models/orders.sql", "-o", "json")
		require.NoError(t, err)

		files := decodeJSON[[]RenderJSONOutput](t, out)
		var got []string
		for _, f := range files {
			got = append(got, f.File)
		}
		assert.Equal(t, []string{"models/customers.sql", "models/orders.sql", "models/staging/stg_events.sql"}, got)

		text, _, err := execute(t, "render", "models/orders.sql", ".", "-o", "text")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(text, "-- models/orders.sql"))
	})

	t.Run("markdown fences each file", func(t *testing.T) {
		out, _, err := execute(t, "render", "models", "-o", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "## models/orders.sql")
		assert.Contains(t, out, "```sql")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("slices", func(t *testing.T) {
		out, _, err := execute(t, "render", "models/orders.sql", "--slices", "-o", "json")
		require.NoError(t, err)
		files := decodeJSON[[]RenderJSONOutput](t, out)
		require.Len(t, files, 1)
		assert.NotEmpty(t, files[0].Slices)
	})

	t.Run("failed files are reported and counted", func(t *testing.T) {
		testutil.WriteFile(t, root+"/broken/bad.sql", "select {{ nope }}\n")
		testutil.WriteFile(t, root+"/broken/good.sql", "select 1\n")

		out, errOut, err := execute(t, "render", "broken", "-o", "text")
		require.Error(t, err)
		assert.Equal(t, "1 of 2 file(s) failed", err.Error())
		assert.Contains(t, errOut, "undefined: nope")
		assert.Contains(t, out, "select 1")
	})
}

func TestParseCommand(t *testing.T) {
	inProject(t)

	t.Run("statements per file", func(t *testing.T) {
		out, _, err := execute(t, "parse", "models/customers.sql", "models/staging", "-o", "json")
		require.NoError(t, err)

		files := decodeJSON[[]ParseJSONOutput](t, out)
		require.Len(t, files, 2)

		assert.Equal(t, "models/customers.sql", files[0].File)
		assert.Equal(t, "postgres", files[0].Dialect)
		require.Len(t, files[0].Statements, 2)
		for _, st := range files[0].Statements {
			assert.Equal(t, "SELECT", st.Kind)
			assert.True(t, st.Parsed)
		}
		assert.Equal(t, 2, files[0].Statements[1].StartLine)

		assert.Equal(t, "bigquery", files[1].Dialect)
	})

	t.Run("dialect override and noqa", func(t *testing.T) {
		testutil.WriteFile(t, "scripts/proc.sql", "exec sp_who -- noqa: L010\nGO\n")

		out, _, err := execute(t, "parse", "scripts/proc.sql", "--dialect", "tsql", "-o", "json")
		require.NoError(t, err)

		files := decodeJSON[[]ParseJSONOutput](t, out)
		require.Len(t, files, 1)
		assert.Equal(t, "tsql", files[0].Dialect)
		require.Len(t, files[0].Statements, 1)
		assert.Equal(t, "EXEC", files[0].Statements[0].Kind)
		assert.Contains(t, out, `"action": "ignore"`)
		assert.Contains(t, out, `"L010"`)
	})

	t.Run("text output", func(t *testing.T) {
		out, _, err := execute(t, "parse", "models/customers.sql", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "models/customers.sql")
		assert.Contains(t, out, "SELECT")
	})
}
