// Package config resolves the CLI's global flags into Settings and carries
// per-invocation state through the command context.
//
// Settings are layered with koanf: built-in defaults, then any flag the
// user set explicitly (via the posflag provider). Flags that mirror
// sqlfluff core keys are also collected into Overrides, which sit above
// every configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultOutput auto-detects: TTY=text, non-TTY=markdown.
const DefaultOutput = "auto"

// overrideFlags maps flag names to the core config keys they replace.
var overrideFlags = map[string]string{
	"dialect":       "dialect",
	"templater":     "templater",
	"rules":         "rules",
	"exclude-rules": "exclude_rules",
	"nocolor":       "nocolor",
	"verbose":       "verbose",
}

// Settings holds the resolved global options.
type Settings struct {
	// ConfigFiles are extra config files layered above the project files.
	ConfigFiles []string `koanf:"config"`
	Output      string   `koanf:"output"`
	Verbose     int      `koanf:"verbose"`
	NoColor     bool     `koanf:"nocolor"`

	// Overrides holds the core config values set by flags.
	Overrides map[string]any `koanf:"-"`
}

// Load resolves settings from defaults and the explicitly set flags.
// A nil flag set yields the defaults.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"output":  DefaultOutput,
		"verbose": 0,
		"nocolor": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	overrides := make(map[string]any)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			val := posflag.FlagVal(flags, f)
			if coreKey, ok := overrideFlags[f.Name]; ok {
				overrides[coreKey] = val
			}
			return key, val
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if _, ok := overrides["verbose"]; ok {
		overrides["verbose"] = s.Verbose
	}
	s.Overrides = overrides
	return &s, nil
}

// AddFlags registers the global flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringSlice("config", nil, "extra config file(s) applied above the project files")
	fs.String("dialect", "", "SQL dialect (overrides config)")
	fs.String("templater", "", "templater: raw, jinja or python (overrides config)")
	fs.String("rules", "", "comma separated rules, groups or globs to enable")
	fs.String("exclude-rules", "", "comma separated rules, groups or globs to disable")
	fs.CountP("verbose", "v", "increase verbosity (repeat for debug logs)")
	fs.Bool("nocolor", false, "disable coloured output")
	fs.StringP("output", "o", DefaultOutput, "output format (auto|text|markdown|json|yaml)")
}
