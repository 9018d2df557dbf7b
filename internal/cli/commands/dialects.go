package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/output"
	"github.com/leapstack-labs/gofluff/pkg/dialect"
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

// NamedEntry is a registry entry for listings.
type NamedEntry struct {
	Name        string `json:"name" yaml:"name"`
	Inherits    string `json:"inherits,omitempty" yaml:"inherits,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the SQL dialects",
		Long: `List the SQL dialects that can be selected with the dialect setting,
--dialect, or an inline "-- sqlfluff:dialect:<name>" directive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []NamedEntry
			for _, d := range dialect.All() {
				entries = append(entries, NamedEntry{Name: d.Name, Inherits: d.Inherits, Description: d.Description})
			}
			return listEntries(cmd, "Dialects", entries, true)
		},
	}
}

// NewTemplatersCommand creates the templaters command.
func NewTemplatersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templaters",
		Short: "List the templaters",
		Long:  `List the templaters that can be selected with the templater setting or --templater.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var entries []NamedEntry
			for _, t := range templater.All() {
				entries = append(entries, NamedEntry{Name: t.Name(), Description: t.Description()})
			}
			return listEntries(cmd, "Templaters", entries, false)
		},
	}
}

func listEntries(cmd *cobra.Command, title string, entries []NamedEntry, inherits bool) error {
	r := NewCommandContext(cmd).Renderer
	if ok, err := r.Structured(entries); ok {
		return err
	}

	header := []string{"Name", "Description"}
	if inherits {
		header = []string{"Name", "Inherits", "Description"}
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if inherits {
			rows = append(rows, []string{e.Name, e.Inherits, e.Description})
		} else {
			rows = append(rows, []string{e.Name, e.Description})
		}
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("# %s\n\n", title)
	} else {
		r.Println(r.Styles().Header1.Render(title))
	}
	r.Table(header, rows)
	return nil
}
