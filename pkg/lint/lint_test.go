package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input  string
		want   Severity
		wantOK bool
	}{
		{"error", SeverityError, true},
		{"Warning", SeverityWarning, true},
		{" info ", SeverityInfo, true},
		{"HINT", SeverityHint, true},
		{"fatal", SeverityWarning, false},
		{"", SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "hint", SeverityHint.String())
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestSeverity_Text(t *testing.T) {
	out, err := json.Marshal(RuleInfo{Code: "L001", Severity: SeverityInfo})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"severity":"info"`)

	var rule RuleInfo
	require.NoError(t, yaml.Unmarshal([]byte("code: L002\nseverity: error\n"), &rule))
	assert.Equal(t, SeverityError, rule.Severity)

	var sev Severity
	err = sev.UnmarshalText([]byte("loud"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid severity "loud"`)
}
