package lint

import (
	"fmt"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Config controls which rules are enabled and their severity.
type Config struct {
	// DisabledRules contains rule codes to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
	}
}

// FromFluffConfig derives rule selection and severities from the "rules"
// and "exclude_rules" core settings and every "rules:<code>:severity".
func FromFluffConfig(cfg *config.FluffConfig, all []RuleInfo) (*Config, error) {
	out := NewConfig()

	selected := make(map[string]bool)
	for _, rule := range Select(all, cfg.GetStringSlice("rules"), cfg.GetStringSlice("exclude_rules")) {
		selected[rule.Code] = true
	}

	for _, rule := range all {
		if !selected[rule.Code] {
			out.Disable(rule.Code)
		}
		raw := cfg.Get("severity", "rules", rule.Code)
		if raw == nil {
			continue
		}
		sev, ok := ParseSeverity(config.FormatValue(raw))
		if !ok {
			return nil, fmt.Errorf("rules:%s:severity: invalid severity %q (valid: error, warning, info, hint)",
				rule.Code, config.FormatValue(raw))
		}
		out.SetSeverity(rule.Code, sev)
	}
	return out, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(code string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[code]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(code string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[code]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Enabled filters all down to the rules that are not disabled.
func (c *Config) Enabled(all []RuleInfo) []RuleInfo {
	var out []RuleInfo
	for _, rule := range all {
		if !c.IsDisabled(rule.Code) {
			out = append(out, rule)
		}
	}
	return out
}

// Disable disables a rule by code.
func (c *Config) Disable(code string) *Config {
	c.DisabledRules[code] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(code string, severity Severity) *Config {
	c.SeverityOverrides[code] = severity
	return c
}
