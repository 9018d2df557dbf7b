package commands

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/lint"
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

func TestNewVersionCommand(t *testing.T) {
	counts := fmt.Sprintf("%d dialects, %d templaters, %d rules", len(dialect.List()), len(templater.List()), lint.Count())

	tests := []struct {
		name    string
		info    BuildInfo
		want    []string
		notWant string
	}{
		{
			name: "release build",
			info: BuildInfo{Version: "0.1.0", Commit: "abc1234", Date: "2026-01-02"},
			want: []string{"gofluff v0.1.0\n", "commit abc1234, built 2026-01-02\n", counts},
		},
		{
			name:    "dev build without commit",
			info:    BuildInfo{Version: "dev"},
			want:    []string{"gofluff vdev\n", counts},
			notWant: "commit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			if tt.notWant != "" {
				assert.NotContains(t, buf.String(), tt.notWant)
			}
		})
	}
}

func TestVersionCommand_RejectsArgs(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "dev"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.Execute())
}
