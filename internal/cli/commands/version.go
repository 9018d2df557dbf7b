package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/lint"
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

// BuildInfo is stamped into the binary with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewVersionCommand prints build information and what the binary has
// registered.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the gofluff version, build details and the number of registered dialects, templaters and rules.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "gofluff v%s\n", info.Version)
			if info.Commit != "" {
				_, _ = fmt.Fprintf(out, "commit %s, built %s\n", info.Commit, info.Date)
			}
			_, _ = fmt.Fprintf(out, "%d dialects, %d templaters, %d rules\n",
				len(dialect.List()), len(templater.List()), lint.Count())
		},
	}
}
