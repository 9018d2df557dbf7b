package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/output"
	intconfig "github.com/leapstack-labs/gofluff/internal/config"
	"github.com/leapstack-labs/gofluff/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group    string // Filter by group
	Selected bool   // Only rules the project config enables
	Verbose  bool   // Show descriptions in listings
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [code]",
		Short: "List available lint rules",
		Long: `List the lint rule catalogue, or show one rule with the options it reads
and their effective values for the current project.

Rules are grouped by category. Use --selected to apply the rules and
exclude_rules settings from the project configuration.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  gofluff rules

  # Show one rule by code or name
  gofluff rules L010
  gofluff rules capitalisation.keywords

  # Rules the project configuration enables
  gofluff rules --selected

  # Core rules as JSON
  gofluff rules --group core -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group (core, layout, aliasing, ...)")
	cmd.Flags().BoolVar(&opts.Selected, "selected", false, "Only rules enabled by the project configuration")
	cmd.Flags().BoolVarP(&opts.Verbose, "long", "l", false, "Show rule descriptions")

	return cmd
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []lint.RuleInfo `json:"rules" yaml:"rules"`
	Count int             `json:"count" yaml:"count"`
}

// RuleDetailOutput is the JSON output for a single rule.
type RuleDetailOutput struct {
	lint.RuleInfo `yaml:",inline"`
	Category      string       `json:"category" yaml:"category"`
	DocURL        string       `json:"doc_url" yaml:"doc_url"`
	Enabled       bool         `json:"enabled" yaml:"enabled"`
	Options       lint.Options `json:"options,omitempty" yaml:"options,omitempty"`
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	rules := lint.All()
	if opts.Group != "" {
		rules = lint.Select(rules, []string{opts.Group}, nil)
	}
	if opts.Selected {
		cfg, err := cc.LoadConfig(contextOf(cmd), ".")
		if err != nil {
			return err
		}
		enabled, err := enabledRules(cfg, rules)
		if err != nil {
			return err
		}
		rules = enabled
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if ci, cj := rules[i].Category(), rules[j].Category(); ci != cj {
			return ci < cj
		}
		return rules[i].Code < rules[j].Code
	})

	if ok, err := r.Structured(RulesJSONOutput{Rules: rules, Count: len(rules)}); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		return listRulesMarkdown(r, rules, opts.Verbose)
	}
	return listRulesText(r, rules, opts.Verbose)
}

func enabledRules(cfg *intconfig.FluffConfig, rules []lint.RuleInfo) ([]lint.RuleInfo, error) {
	lc, err := lint.FromFluffConfig(cfg, rules)
	if err != nil {
		return nil, err
	}
	return lc.Enabled(rules), nil
}

func showRule(cmd *cobra.Command, codeOrName string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	rule, ok := lint.Lookup(codeOrName)
	if !ok {
		return fmt.Errorf("rule %q not found", codeOrName)
	}

	cfg, err := cc.LoadConfig(contextOf(cmd), ".")
	if err != nil {
		return err
	}
	enabled, err := enabledRules(cfg, []lint.RuleInfo{rule})
	if err != nil {
		return err
	}

	detail := RuleDetailOutput{
		RuleInfo: rule,
		Category: rule.Category(),
		DocURL:   rule.DocURL(),
		Enabled:  len(enabled) == 1,
		Options:  lint.OptionsFor(cfg, rule.Code),
	}
	if ok, err := r.Structured(detail); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		return showRuleMarkdown(r, detail)
	}
	return showRuleText(r, detail)
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	current := ""
	for _, rule := range rules {
		if cat := rule.Category(); cat != current {
			current = cat
			r.Println(styles.Header2.Render(capitalizeFirst(cat)))
		}

		core := ""
		if rule.InGroup(lint.GroupCore) {
			core = styles.Info.Render(" core")
		}
		r.Printf("  %s  %s - %s%s\n",
			styles.Muted.Render(rule.Code),
			rule.Name,
			severityStyle(styles, rule.Severity).Render(rule.Severity.String()),
			core,
		)
		if verbose {
			r.Println(styles.Muted.Render("        " + rule.Description))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'gofluff rules <code>' for detailed documentation"))
	r.Println("")
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	current := ""
	for _, rule := range rules {
		if cat := rule.Category(); cat != current {
			current = cat
			r.Println("## " + capitalizeFirst(cat))
			r.Println("")
		}
		r.Printf("- **%s** - %s (`%s`)\n", rule.Code, rule.Name, rule.Severity.String())
		if verbose {
			r.Println("  " + rule.Description)
		}
	}
	r.Println("")
	return nil
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, d RuleDetailOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", d.Code, d.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Groups"), strings.Join(d.Groups, ", "))
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), severityStyle(styles, d.Severity).Render(d.Severity.String()))
	enabled := styles.Success.Render("yes")
	if !d.Enabled {
		enabled = styles.Muted.Render("no")
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Enabled"), enabled)
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + d.Description)
	r.Println("")

	if d.BadExample != "" {
		r.Println(styles.Bold.Render("Anti-pattern"))
		for _, line := range strings.Split(d.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}
	if d.GoodExample != "" {
		r.Println(styles.Bold.Render("Best practice"))
		for _, line := range strings.Split(d.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if keys := d.Options.Keys(); len(keys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		for _, k := range keys {
			r.Printf("  %s = %s\n", styles.Key.Render(k), intconfig.FormatValue(d.Options[k]))
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(d.DocURL))
	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, d RuleDetailOutput) error {
	r.Printf("# %s - %s\n\n", d.Code, d.Name)
	r.Printf("**Groups:** %s | **Severity:** `%s` | **Enabled:** %t\n\n", strings.Join(d.Groups, ", "), d.Severity.String(), d.Enabled)
	r.Println(d.Description)
	r.Println("")

	if d.BadExample != "" {
		r.Println("## Anti-pattern")
		r.Println("")
		r.Println("```sql")
		r.Println(d.BadExample)
		r.Println("```")
		r.Println("")
	}
	if d.GoodExample != "" {
		r.Println("## Best practice")
		r.Println("")
		r.Println("```sql")
		r.Println(d.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if keys := d.Options.Keys(); len(keys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		for _, k := range keys {
			r.Printf("- `%s = %s`\n", k, intconfig.FormatValue(d.Options[k]))
		}
		r.Println("")
	}

	r.Printf("[Documentation](%s)\n", d.DocURL)
	return nil
}

func severityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
