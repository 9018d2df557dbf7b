package lint

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Options holds the effective configuration of a single rule.
type Options map[string]any

// OptionsFor merges the generic "rules" keys the rule declares with its
// own "rules:<code>" section. The rule section wins. Unregistered codes
// only see their own section.
func OptionsFor(cfg *config.FluffConfig, code string) Options {
	opts := make(Options)
	if rule, ok := Get(code); ok {
		code = rule.Code
		for _, key := range rule.ConfigKeys {
			if cfg.Exists(key, "rules") {
				opts[key] = cfg.Get(key, "rules")
			}
		}
	}
	for k, v := range cfg.GetSection("rules", code) {
		if _, nested := v.(map[string]any); nested {
			continue
		}
		opts[k] = v
	}
	return opts
}

// Keys returns the option names, sorted.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts Options, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetString extracts a string option. None yields defaultVal.
func (o Options) GetString(key, defaultVal string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return defaultVal
	}
	return config.FormatValue(v)
}

// GetInt extracts an int option, accepting numeric strings.
func (o Options) GetInt(key string, defaultVal int) int {
	switch n := o[key].(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return defaultVal
	}
	return GetOption(o, key, defaultVal)
}

// GetBool extracts a bool option, accepting "True" and "False" strings.
func (o Options) GetBool(key string, defaultVal bool) bool {
	if s, ok := o[key].(string); ok {
		if coerced, ok := config.Coerce(s).(bool); ok {
			return coerced
		}
		return defaultVal
	}
	return GetOption(o, key, defaultVal)
}

// GetStringSlice extracts a list option, splitting comma separated text.
// None yields an empty list.
func (o Options) GetStringSlice(key string, defaultVal []string) []string {
	v, ok := o[key]
	if !ok {
		return defaultVal
	}
	return config.SplitCommaList(v)
}
