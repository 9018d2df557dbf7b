package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/output"
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

// RenderJSONOutput is the JSON output for one rendered file.
type RenderJSONOutput struct {
	File      string            `json:"file" yaml:"file"`
	Templater string            `json:"templater" yaml:"templater"`
	Templated string            `json:"templated,omitempty" yaml:"templated,omitempty"`
	Slices    []templater.Slice `json:"slices,omitempty" yaml:"slices,omitempty"`
	Error     string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var showSlices bool
	cmd := &cobra.Command{
		Use:   "render <paths...>",
		Short: "Render SQL files with their templater",
		Long: `Render SQL files with the templater their configuration selects.

Each file is rendered with its own configuration, including inline
"-- sqlfluff:" directives. Directories are expanded using sql_file_exts and
.sqlfluffignore.

Output adapts to environment:
  - Terminal: Plain SQL
  - Piped/Scripted: Markdown with code blocks`,
		Example: `  # Render a model
  gofluff render models/orders.sql

  # Render a directory with the raw templater
  gofluff render models --templater raw

  # Include the source to output mapping
  gofluff render models/orders.sql --slices -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, showSlices)
		},
	}
	cmd.Flags().BoolVar(&showSlices, "slices", false, "Include the templated slices")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, showSlices bool) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	results, err := processFiles(contextOf(cmd), cc, args, func(_ context.Context, rf *renderedFile) (*renderedFile, error) {
		return rf, nil
	})
	if err != nil {
		return err
	}

	out := make([]RenderJSONOutput, 0, len(results))
	for _, res := range results {
		o := RenderJSONOutput{File: res.Path}
		if res.Err != nil {
			o.Error = res.Err.Error()
		} else {
			o.Templater = res.Value.Config.GetString("templater")
			o.Templated = res.Value.File.Templated
			if showSlices {
				o.Slices = res.Value.File.Slices
			}
		}
		out = append(out, o)
	}
	if ok, err := r.Structured(out); ok {
		if err != nil {
			return err
		}
		return failed(results)
	}

	styles := r.Styles()
	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, o := range out {
		if o.Error != "" {
			r.Warnf("%s", o.Error)
			continue
		}
		switch {
		case markdown:
			r.Printf("## %s\n\n```sql\n%s\n```\n\n", o.File, strings.TrimRight(o.Templated, "\n"))
		case len(out) > 1:
			r.Println(styles.Muted.Render("-- " + o.File))
			r.Println(strings.TrimRight(o.Templated, "\n"))
		default:
			r.Printf("%s", o.Templated)
		}
		if showSlices && !markdown {
			for _, s := range o.Slices {
				r.Println(styles.Muted.Render(formatSlice(s)))
			}
		}
	}
	return failed(results)
}

func formatSlice(s templater.Slice) string {
	return fmt.Sprintf("-- %-9s source[%d:%d] templated[%d:%d]",
		s.Kind, s.SourceStart, s.SourceEnd, s.TemplatedStart, s.TemplatedEnd)
}
