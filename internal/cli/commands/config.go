package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gofluff/internal/cli/output"
	intconfig "github.com/leapstack-labs/gofluff/internal/config"
	"github.com/leapstack-labs/gofluff/pkg/lint"
	_ "github.com/leapstack-labs/gofluff/pkg/lint/rules" // register the rule catalogue
	"github.com/leapstack-labs/gofluff/pkg/templater"
)

// ConfigShowOptions holds options for config show.
type ConfigShowOptions struct {
	Diff    bool   // only values that differ from the defaults
	Section string // e.g. "rules:L010"
	Watch   bool   // re-print when a config file changes
	Sources bool   // list the layers instead of values
	Migrate bool   // move renamed options to their current names
}

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage sqlfluff configuration",
		Long: `Inspect the configuration that applies to a path.

Configuration is layered, lowest precedence first: built-in defaults, the
user config directory, every setup.cfg, tox.ini, pep8.ini, .sqlfluff and
pyproject.toml from the working directory down to the target, --config
files, .env and GOFLUFF_* environment variables, then command line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigDefaultsCommand())
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	opts := &ConfigShowOptions{}
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show the effective configuration for a path",
		Example: `  # Effective config for the current directory
  gofluff config show

  # Only the values a project changes
  gofluff config show models/orders.sql --diff

  # A single rule section as JSON
  gofluff config show --section rules:L010 -o json

  # Which files contributed
  gofluff config show --sources

  # Renamed options under their current names
  gofluff config show --migrate --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, pathArg(args), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Only show values that differ from the defaults")
	cmd.Flags().StringVar(&opts.Section, "section", "", "Only show one section, e.g. rules:L010")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Print again whenever a config file changes")
	cmd.Flags().BoolVar(&opts.Sources, "sources", false, "List the configuration layers")
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "Show renamed options under their current names")
	return cmd
}

func runConfigShow(cmd *cobra.Command, path string, opts *ConfigShowOptions) error {
	cc := NewCommandContext(cmd)
	ctx := contextOf(cmd)

	cfg, err := cc.LoadConfig(ctx, path)
	if err != nil {
		return err
	}
	if err := showConfig(cc.Renderer, cfg, opts); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	w := intconfig.NewWatcher(cc.Loader, path, cc.Logger)
	w.Overrides = cc.Settings.Overrides
	cc.Logger.Info("watching configuration", "path", path)
	return w.Run(ctx, func(cfg *intconfig.FluffConfig) {
		cc.Renderer.Println("")
		if err := showConfig(cc.Renderer, cfg, opts); err != nil {
			cc.Logger.Warn("failed to show configuration", "error", err)
		}
	})
}

func showConfig(r *output.Renderer, cfg *intconfig.FluffConfig, opts *ConfigShowOptions) error {
	if opts.Sources {
		return showSources(r, cfg.Sources())
	}
	if opts.Migrate {
		var err error
		if cfg, err = intconfig.Migrate(cfg); err != nil {
			return err
		}
	}

	values := cfg.Raw()
	if opts.Diff {
		values = entriesToMap(cfg.Diff(intconfig.Defaults()))
	}

	if opts.Section != "" {
		parts := splitSection(opts.Section)
		section, ok := lookupSection(values, parts)
		if !ok {
			if opts.Diff {
				section = map[string]any{}
			} else {
				return fmt.Errorf("section %q not found", opts.Section)
			}
		}
		if ok, err := r.Structured(section); ok {
			return err
		}
		values = nest(parts, section)
	} else if ok, err := r.Structured(values); ok {
		return err
	}

	text := string(intconfig.MarshalCfg(values))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("```ini")
		r.Printf("%s", text)
		r.Println("```")
		return nil
	}
	printCfgText(r, text)
	return nil
}

// printCfgText prints cfg text with headers and keys highlighted.
func printCfgText(r *output.Renderer, text string) {
	styles := r.Styles()
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "["):
			r.Println(styles.Header2.Render(line))
		case strings.Contains(line, " = "):
			key, val, _ := strings.Cut(line, " = ")
			r.Println(styles.Key.Render(key) + " = " + val)
		default:
			r.Println(line)
		}
	}
}

func showSources(r *output.Renderer, sources []intconfig.Source) error {
	if ok, err := r.Structured(sources); ok {
		return err
	}
	rows := make([][]string, 0, len(sources))
	for i, s := range sources {
		rows = append(rows, []string{fmt.Sprint(i + 1), string(s.Kind), s.Path, fmt.Sprint(s.Keys)})
	}
	r.Table([]string{"#", "Kind", "Path", "Keys"}, rows)
	return nil
}

// splitSection accepts "rules:L010" and "rules.L010". A leading
// "sqlfluff" is dropped so cfg headers can be pasted as is.
func splitSection(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '.' })
	if len(parts) > 0 && strings.EqualFold(parts[0], "sqlfluff") {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return []string{"core"}
	}
	return parts
}

func lookupSection(values map[string]any, parts []string) (map[string]any, bool) {
	cur := values
	for _, p := range parts {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func nest(parts []string, leaf map[string]any) map[string]any {
	out := leaf
	for i := len(parts) - 1; i >= 0; i-- {
		out = map[string]any{parts[i]: out}
	}
	return out
}

// entriesToMap rebuilds a nested map from flattened entries.
func entriesToMap(entries []intconfig.Entry) map[string]any {
	out := make(map[string]any)
	for _, e := range entries {
		if e.Section {
			continue
		}
		parts := strings.Split(e.Path, ".")
		cur := out
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[p] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = e.Value
	}
	return out
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check the configuration for unknown keys and invalid values",
		Long: `Check the configuration that applies to a path.

Errors (an unknown dialect, an invalid value for a known option) make the
command exit non-zero. Warnings cover unknown or renamed keys and rule
selections that match nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, pathArg(args))
		},
	}
}

func runConfigValidate(cmd *cobra.Command, path string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	cfg, err := cc.LoadConfig(contextOf(cmd), path)
	if err != nil {
		return err
	}

	problems := ValidateConfig(cfg)
	if ok, err := r.Structured(map[string]any{"path": path, "problems": problems, "valid": !intconfig.HasErrors(problems)}); ok {
		if err != nil {
			return err
		}
		return validationResult(problems)
	}

	styles := r.Styles()
	if len(problems) == 0 {
		r.Println(styles.Success.Render("configuration is valid"))
		return nil
	}
	for _, p := range problems {
		style := styles.Warning
		if p.Level == intconfig.LevelError {
			style = styles.Error
		}
		r.Printf("%s %s: %s\n", style.Render(string(p.Level)), styles.Key.Render(p.Path), p.Message)
	}
	return validationResult(problems)
}

func validationResult(problems []intconfig.Problem) error {
	if !intconfig.HasErrors(problems) {
		return nil
	}
	n := 0
	for _, p := range problems {
		if p.Level == intconfig.LevelError {
			n++
		}
	}
	return fmt.Errorf("configuration has %d error(s)", n)
}

// ValidateConfig checks cfg against the registered templaters and rules.
func ValidateConfig(cfg *intconfig.FluffConfig) []intconfig.Problem {
	problems := intconfig.Validate(cfg, intconfig.WithTemplaters(templater.List()))

	all := lint.All()
	for _, key := range []string{"rules", "exclude_rules"} {
		for _, p := range lint.Unmatched(all, cfg.GetStringSlice(key)) {
			problems = append(problems, intconfig.Problem{
				Path:    "core:" + key,
				Message: fmt.Sprintf("%q matches no rule, group or name", p),
				Level:   intconfig.LevelWarning,
			})
		}
	}
	if _, err := lint.FromFluffConfig(cfg, all); err != nil {
		problems = append(problems, intconfig.Problem{Path: "rules", Message: err.Error(), Level: intconfig.LevelError})
	}
	return problems
}

func newConfigDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			if ok, err := r.Structured(intconfig.Defaults().Raw()); ok {
				return err
			}
			r.Printf("%s", intconfig.DefaultConfigText())
			return nil
		},
	}
}

// starterConfig is written by config init.
const starterConfig = `[sqlfluff]
dialect = %s
templater = %s
# Comma separated rule codes, names or groups. None enables everything.
rules = None
exclude_rules = None

[sqlfluff:indentation]
indented_joins = False
indented_using_on = True

[sqlfluff:rules]
tab_space_size = 4
max_line_length = 80
indent_unit = space

[sqlfluff:rules:L010]
capitalisation_policy = consistent
`

func newConfigInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter .sqlfluff file",
		Example: `  # Initialize in the current directory
  gofluff config init

  # Pick the dialect up front
  gofluff config init warehouse --dialect snowflake

  # Replace an existing file
  gofluff config init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			path, err := writeStarterConfig(pathArg(args), cc.Settings.Overrides, force)
			if err != nil {
				return err
			}
			cc.Renderer.Printf("Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .sqlfluff")
	return cmd
}

func writeStarterConfig(dir string, overrides map[string]any, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".sqlfluff")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	dialectName, templaterName := "ansi", "jinja"
	if v, ok := overrides["dialect"]; ok {
		dialectName = intconfig.FormatValue(v)
	}
	if v, ok := overrides["templater"]; ok {
		templaterName = intconfig.FormatValue(v)
	}
	content := fmt.Sprintf(starterConfig, dialectName, templaterName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
