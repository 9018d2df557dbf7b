package config

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
)

// Level is the severity of a validation problem.
type Level string

// Problem levels.
const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Problem is a single validation finding.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Level, p.Path, p.Message)
}

// removedKeys maps config paths that no longer exist to an explanation.
var removedKeys = map[string]string{
	"rules.L003.lint_templated_tokens": "no longer used; templated tokens are never linted",
}

// renamedKeys maps old config paths to their replacements.
var renamedKeys = map[string]string{
	"rules.L014.capitalisation_policy": "rules.L014.extended_capitalisation_policy",
}

// builtinTemplaters is consulted when no WithTemplaters option is given.
var builtinTemplaters = []string{"raw", "python", "jinja"}

type validateOptions struct {
	templaters []string
}

// ValidateOption configures Validate.
type ValidateOption func(*validateOptions)

// WithTemplaters sets the templater names considered valid.
func WithTemplaters(names []string) ValidateOption {
	return func(o *validateOptions) { o.templaters = names }
}

// Validate reports removed, renamed and invalid values in cfg.
func Validate(cfg *FluffConfig, opts ...ValidateOption) []Problem {
	o := validateOptions{templaters: builtinTemplaters}
	for _, opt := range opts {
		opt(&o)
	}

	var problems []Problem
	all := cfg.k.All()

	for path, why := range removedKeys {
		if _, ok := all[path]; ok {
			problems = append(problems, Problem{Path: displayPath(path), Message: "removed option: " + why, Level: LevelError})
		}
	}
	for oldPath, newPath := range renamedKeys {
		if _, ok := all[oldPath]; ok {
			problems = append(problems, Problem{
				Path:    displayPath(oldPath),
				Message: fmt.Sprintf("option renamed to %s", displayPath(newPath)),
				Level:   LevelWarning,
			})
		}
	}

	if name := cfg.GetString("dialect"); name != "" {
		if _, ok := dialect.Get(name); !ok {
			problems = append(problems, Problem{
				Path:    "core:dialect",
				Message: fmt.Sprintf("unknown dialect %q (available: %s)", name, strings.Join(dialect.List(), ", ")),
				Level:   LevelError,
			})
		}
	}
	if name := cfg.GetString("templater"); name != "" && !slices.Contains(o.templaters, name) {
		problems = append(problems, Problem{
			Path:    "core:templater",
			Message: fmt.Sprintf("unknown templater %q (available: %s)", name, strings.Join(o.templaters, ", ")),
			Level:   LevelError,
		})
	}

	for path, val := range all {
		if !strings.HasPrefix(path, "rules.") {
			continue
		}
		name := path[strings.LastIndex(path, ".")+1:]
		info, ok := ConfigInfo[name]
		if !ok {
			continue
		}
		if msg := checkOption(info, val); msg != "" {
			problems = append(problems, Problem{Path: displayPath(path), Message: msg, Level: LevelError})
		}
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Path != problems[j].Path {
			return problems[i].Path < problems[j].Path
		}
		return problems[i].Message < problems[j].Message
	})
	return problems
}

// HasErrors reports whether any problem is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Level == LevelError {
			return true
		}
	}
	return false
}

func checkOption(info OptionInfo, val any) string {
	if val == nil {
		return ""
	}
	switch info.ValidatesType {
	case "int":
		if _, ok := val.(int); !ok {
			return fmt.Sprintf("expected an integer, got %q", FormatValue(val))
		}
		return ""
	case "bool":
		if _, ok := val.(bool); !ok {
			return fmt.Sprintf("expected True or False, got %q", FormatValue(val))
		}
		return ""
	}
	if len(info.ValidOptions) == 0 {
		return ""
	}
	got := FormatValue(val)
	valid := make([]string, len(info.ValidOptions))
	for i, v := range info.ValidOptions {
		valid[i] = FormatValue(v)
	}
	if slices.Contains(valid, got) {
		return ""
	}
	return fmt.Sprintf("invalid value %q (valid: %s)", got, strings.Join(valid, ", "))
}

// Migrate returns a copy of cfg with renamed options moved to their new
// names and removed options dropped. A new name already set away from its
// default wins over the old one.
func Migrate(cfg *FluffConfig) (*FluffConfig, error) {
	out := cfg.Copy()
	all := out.k.All()
	defaults := Defaults().k.All()
	for oldPath, newPath := range renamedKeys {
		val, ok := all[oldPath]
		if !ok {
			continue
		}
		cur, exists := all[newPath]
		if !exists || reflect.DeepEqual(cur, defaults[newPath]) {
			if err := out.k.Set(newPath, val); err != nil {
				return nil, fmt.Errorf("migrating %s: %w", displayPath(oldPath), err)
			}
		}
		out.k.Delete(oldPath)
	}
	for path := range removedKeys {
		if _, ok := all[path]; ok {
			out.k.Delete(path)
		}
	}
	return out, nil
}

// displayPath renders rules.L010.x as rules:L010:x.
func displayPath(path string) string {
	return strings.ReplaceAll(path, ".", ":")
}
