package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(rules []RuleInfo) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Code)
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		allow []string
		deny  []string
		want  []string
	}{
		{name: "everything by default", want: []string{"L001", "L010", "L011", "L016"}},
		{name: "codes", allow: []string{"L010", "l016"}, want: []string{"L010", "L016"}},
		{name: "names", allow: []string{"aliasing.table"}, want: []string{"L011"}},
		{name: "groups", allow: []string{"core"}, want: []string{"L001", "L010", "L016"}},
		{name: "code glob", allow: []string{"L01*"}, want: []string{"L010", "L011", "L016"}},
		{name: "name glob", allow: []string{"layout.*"}, want: []string{"L001", "L016"}},
		{name: "deny wins", allow: []string{"layout"}, deny: []string{"L016"}, want: []string{"L001"}},
		{name: "deny only", deny: []string{"core"}, want: []string{"L011"}},
		{name: "no match", allow: []string{"L999"}, want: []string{}},
		{name: "malformed glob matches nothing", allow: []string{"L0[1"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codes(Select(testRules, tt.allow, tt.deny)))
		})
	}
}

func TestUnmatched(t *testing.T) {
	got := Unmatched(testRules, []string{"L010", "L999", "layout", "nope.*", " "})
	assert.Equal(t, []string{"L999", "nope.*", " "}, got)
	assert.Empty(t, Unmatched(testRules, nil))
}

func TestMatches(t *testing.T) {
	rule := testRules[3]

	assert.True(t, Matches(rule, "L016"))
	assert.True(t, Matches(rule, " layout.long_lines "))
	assert.True(t, Matches(rule, "Layout"))
	assert.True(t, Matches(rule, "l0?6"))
	assert.False(t, Matches(rule, ""))
	assert.False(t, Matches(rule, "L01"))
}
