package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/output"
	"github.com/leapstack-labs/gofluff/pkg/grammar"
	"github.com/leapstack-labs/gofluff/pkg/lexer"
	"github.com/leapstack-labs/gofluff/pkg/lint"
)

// StatementInfo describes one statement found by parse.
type StatementInfo struct {
	Kind      string `json:"kind" yaml:"kind"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	StartCol  int    `json:"start_col" yaml:"start_col"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	EndCol    int    `json:"end_col" yaml:"end_col"`
	Parsed    bool   `json:"parsed" yaml:"parsed"`
}

// ParseJSONOutput is the JSON output for one parsed file.
type ParseJSONOutput struct {
	File       string          `json:"file" yaml:"file"`
	Dialect    string          `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Statements []StatementInfo `json:"statements,omitempty" yaml:"statements,omitempty"`
	NoQA       []lint.NoQA     `json:"noqa,omitempty" yaml:"noqa,omitempty"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <paths...>",
		Short: "Split rendered SQL into statements",
		Long: `Render SQL files, lex the result with the configured dialect and split it
into statements using the dialect grammar.

The recurse setting limits how deeply grammar references are expanded.
Statements the grammar cannot match are reported as unparsed.`,
		Example: `  # Statements in a file
  gofluff parse models/orders.sql

  # With a dialect override, as YAML
  gofluff parse scripts --dialect tsql -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	results, err := processFiles(contextOf(cmd), cc, args, func(_ context.Context, rf *renderedFile) (ParseJSONOutput, error) {
		return parseRendered(cc, rf)
	})
	if err != nil {
		return err
	}

	out := make([]ParseJSONOutput, 0, len(results))
	for _, res := range results {
		o := res.Value
		o.File = res.Path
		if res.Err != nil {
			o.Error = res.Err.Error()
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
	for _, o := range out {
		if o.Error != "" {
			r.Warnf("%s", o.Error)
			continue
		}
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Printf("## %s (%s)\n\n", o.File, o.Dialect)
		} else {
			r.Println(styles.Header2.Render(o.File) + styles.Muted.Render(" ("+o.Dialect+")"))
		}
		rows := make([][]string, 0, len(o.Statements))
		for i, st := range o.Statements {
			parsed := "yes"
			if !st.Parsed {
				parsed = "no"
			}
			rows = append(rows, []string{
				itoa(i + 1), st.Kind,
				fmt.Sprintf("%d:%d-%d:%d", st.StartLine, st.StartCol, st.EndLine, st.EndCol),
				parsed,
			})
		}
		r.Table([]string{"#", "Kind", "Span", "Parsed"}, rows)
		for _, n := range o.NoQA {
			r.Println(styles.Muted.Render(fmt.Sprintf("noqa line %d: %s %v", n.Line, n.Action, n.Rules)))
		}
		r.Println("")
	}
	return failed(results)
}

func parseRendered(cc *CommandContext, rf *renderedFile) (ParseJSONOutput, error) {
	d, err := rf.Config.Dialect()
	if err != nil {
		return ParseJSONOutput{}, err
	}

	lx := lexer.New(rf.File.Templated)
	lx.HashComments = d.HashComments
	segs, err := lx.All()
	if err != nil {
		return ParseJSONOutput{}, fmt.Errorf("%s: %w", rf.Path, err)
	}

	pctx := grammar.NewContext(d, cc.Logger, rf.Config.GetInt("recurse"))
	stmts := grammar.SplitStatements(pctx, segs)

	noqa, err := lint.ExtractNoQA(rf.File.Templated)
	if err != nil {
		return ParseJSONOutput{}, fmt.Errorf("%s: %w", rf.Path, err)
	}

	out := ParseJSONOutput{Dialect: d.Name, NoQA: noqa}
	for _, st := range stmts {
		out.Statements = append(out.Statements, StatementInfo{
			Kind:      st.Kind,
			StartLine: st.Span.Start.Line,
			StartCol:  st.Span.Start.Column,
			EndLine:   st.Span.End.Line,
			EndCol:    st.Span.End.Column,
			Parsed:    st.Parsed,
		})
	}
	return out, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
