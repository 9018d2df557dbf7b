package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/internal/config"
)

func TestFromFluffConfig(t *testing.T) {
	tests := []struct {
		name         string
		core         map[string]any
		rules        map[string]any
		wantEnabled  []string
		wantSeverity map[string]Severity
		wantErr      string
	}{
		{
			name:        "defaults enable everything",
			wantEnabled: []string{"L001", "L010", "L011", "L016"},
		},
		{
			name:        "rules and exclude_rules",
			core:        map[string]any{"rules": "core", "exclude_rules": "L001"},
			wantEnabled: []string{"L010", "L016"},
		},
		{
			name: "severity overrides",
			rules: map[string]any{
				"L010": map[string]any{"severity": "error"},
				"L011": map[string]any{"severity": "Hint"},
			},
			wantEnabled:  []string{"L001", "L010", "L011", "L016"},
			wantSeverity: map[string]Severity{"L010": SeverityError, "L011": SeverityHint},
		},
		{
			name:    "invalid severity",
			rules:   map[string]any{"L016": map[string]any{"severity": "loud"}},
			wantErr: `rules:L016:severity: invalid severity "loud"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]any{}
			if tt.core != nil {
				values["core"] = tt.core
			}
			if tt.rules != nil {
				values["rules"] = tt.rules
			}
			cfg, err := config.New(values)
			require.NoError(t, err)

			lc, err := FromFluffConfig(cfg, testRules)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnabled, codes(lc.Enabled(testRules)))
			for code, want := range tt.wantSeverity {
				assert.Equal(t, want, lc.GetSeverity(code, SeverityWarning), code)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.IsDisabled("L001"))
	assert.Equal(t, SeverityInfo, nilCfg.GetSeverity("L001", SeverityInfo))

	cfg := NewConfig().Disable("L001").SetSeverity("L010", SeverityError)
	assert.True(t, cfg.IsDisabled("L001"))
	assert.False(t, cfg.IsDisabled("L010"))
	assert.Equal(t, SeverityError, cfg.GetSeverity("L010", SeverityWarning))
	assert.Equal(t, SeverityWarning, cfg.GetSeverity("L011", SeverityWarning))
	assert.Equal(t, []string{"L010", "L011", "L016"}, codes(cfg.Enabled(testRules)))
}
