package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/internal/cli"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".xdg"))
	t.Chdir(dir)
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gofluff v"+cli.Version)
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "gofluff "+cli.Version)
}

func TestSubcommandsRegistered(t *testing.T) {
	root := cli.NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "config", "rules", "dialects", "templaters", "render", "parse", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "dialect", "templater", "rules", "exclude-rules", "verbose", "nocolor", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "gofluff")
		})
	}

	_, err := run(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestEndToEnd(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.cfg"), []byte(`[metadata]
name = warehouse

[sqlfluff]
dialect = snowflake
templater = jinja

[sqlfluff:templater:jinja:context]
db = raw
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "load.sql"),
		[]byte("copy into {{ db }}.t from @stage;\nselect 1\n"), 0o600))

	out, err := run(t, "render", "load.sql", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "copy into raw.t from @stage;")

	out, err = run(t, "parse", "load.sql", "-o", "json")
	require.NoError(t, err)

	var parsed []struct {
		Dialect    string `json:"dialect"`
		Statements []struct {
			Kind string `json:"kind"`
		} `json:"statements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed), out)
	require.Len(t, parsed, 1)
	assert.Equal(t, "snowflake", parsed[0].Dialect)
	require.Len(t, parsed[0].Statements, 2)
	assert.Equal(t, "COPY", parsed[0].Statements[0].Kind)
	assert.Equal(t, "SELECT", parsed[0].Statements[1].Kind)

	t.Setenv("GOFLUFF_DIALECT", "bigquery")
	out, err = run(t, "config", "show", "--section", "core", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"dialect": "bigquery"`)

	out, err = run(t, "config", "show", "--section", "core", "--dialect", "tsql", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"dialect": "tsql"`)
}

func TestUnknownDialectFlag(t *testing.T) {
	isolate(t)
	_, err := run(t, "config", "show", "--dialect", "oracle9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle9"`)
}
