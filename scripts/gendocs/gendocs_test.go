package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/pkg/lint"
)

func TestRun(t *testing.T) {
	tests := []struct {
		gen       string
		wantFiles []string
		wantText  map[string]string
	}{
		{
			gen:       "cli",
			wantFiles: []string{"index.md", "config.md", "render.md", "rules.md"},
			wantText: map[string]string{
				"index.md":  "GOFLUFF_DIALECT",
				"render.md": "gofluff render <paths...>",
			},
		},
		{
			gen:       "rules",
			wantFiles: []string{"index.md", "layout.md", "capitalisation.md"},
			wantText: map[string]string{
				"capitalisation.md": "## L010 - capitalisation.keywords {#L010}",
				"layout.md":         "| `max_line_length` | `80` |",
			},
		},
		{
			gen:       "config",
			wantFiles: []string{"configuration.md"},
			wantText: map[string]string{
				"configuration.md": "`capitalisation_policy` | `consistent`, `upper`, `lower`, `capitalise`",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.gen, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, run(tt.gen, dir, t.TempDir()))

			for _, name := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, name))
			}
			for name, want := range tt.wantText {
				data, err := os.ReadFile(filepath.Join(dir, name))
				require.NoError(t, err)
				assert.Contains(t, string(data), want)
			}
		})
	}
}

func TestRun_All(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, run("all", "", root))

	for _, dir := range []string{"cli", "rules", "configuration"} {
		entries, err := os.ReadDir(filepath.Join(root, "docs", dir))
		require.NoError(t, err)
		assert.NotEmpty(t, entries, dir)
	}

	require.Error(t, run("all", "out", root))
	err := run("nope", "", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown -gen value")
}

func TestGroupRulesByCategory(t *testing.T) {
	grouped := groupRulesByCategory(lint.All())
	total := 0
	for cat, rules := range grouped {
		assert.NotEmpty(t, cat)
		total += len(rules)
		for i := 1; i < len(rules); i++ {
			assert.Less(t, rules[i-1].Code, rules[i].Code)
		}
	}
	assert.Equal(t, lint.Count(), total)
}

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", string(w.Bytes()))
}
