package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoQA(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    *NoQA
		wantErr string
	}{
		{name: "bare", comment: "-- noqa", want: &NoQA{Line: 3, Action: NoQAIgnore}},
		{name: "bare with colon", comment: "--noqa:", want: &NoQA{Line: 3, Action: NoQAIgnore}},
		{name: "hash prefix", comment: "# NOQA", want: &NoQA{Line: 3, Action: NoQAIgnore}},
		{
			name:    "rule list",
			comment: "-- noqa: L010, L014",
			want:    &NoQA{Line: 3, Action: NoQAIgnore, Rules: []string{"L010", "L014"}},
		},
		{
			name:    "disable",
			comment: "-- noqa: disable=L01*,layout",
			want:    &NoQA{Line: 3, Action: NoQADisable, Rules: []string{"L01*", "layout"}},
		},
		{name: "enable all", comment: "-- noqa:enable=all", want: &NoQA{Line: 3, Action: NoQAEnable}},
		{name: "ordinary comment", comment: "-- select everything"},
		{name: "noqa prefix of a word", comment: "-- noqable"},
		{name: "block comment", comment: "/* noqa */"},
		{name: "unknown action", comment: "-- noqa: silence=L010", wantErr: `line 3: unknown noqa action "silence"`},
		{name: "empty rule list", comment: "-- noqa: disable= , ", wantErr: "line 3: noqa directive names no rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNoQA(tt.comment, 3)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractNoQA(t *testing.T) {
	sql := "select a -- noqa: L010\n" +
		"from b /* noqa */\n" +
		"-- noqa: disable=L016\n" +
		"where '-- noqa' = c\n"

	got, err := ExtractNoQA(sql)
	require.NoError(t, err)
	assert.Equal(t, []NoQA{
		{Line: 1, Action: NoQAIgnore, Rules: []string{"L010"}},
		{Line: 3, Action: NoQADisable, Rules: []string{"L016"}},
	}, got)

	_, err = ExtractNoQA("select 1 -- noqa: bogus=L010\n")
	require.Error(t, err)
}

func TestIgnored(t *testing.T) {
	useTestRules(t)

	noqas := []NoQA{
		{Line: 9, Action: NoQAEnable, Rules: []string{"layout"}},
		{Line: 2, Action: NoQAIgnore, Rules: []string{"L010"}},
		{Line: 4, Action: NoQADisable},
		{Line: 6, Action: NoQAEnable, Rules: []string{"L01*"}},
		{Line: 7, Action: NoQAIgnore},
	}

	tests := []struct {
		code string
		line int
		want bool
	}{
		{"L010", 2, true},
		{"L011", 2, false},
		{"L010", 3, false},
		{"L001", 4, true},
		{"L010", 5, true},
		{"L010", 6, false},
		{"L001", 6, true},
		{"L011", 7, true},
		{"L001", 8, true},
		{"L001", 9, false},
		{"L016", 9, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Ignored(noqas, tt.code, tt.line), "%s on line %d", tt.code, tt.line)
	}
	assert.False(t, Ignored(nil, "L001", 1))
}

func TestNoQAAction_String(t *testing.T) {
	assert.Equal(t, "ignore", NoQAIgnore.String())
	assert.Equal(t, "disable", NoQADisable.String())
	assert.Equal(t, "enable", NoQAEnable.String())
	assert.Equal(t, "unknown", NoQAAction(9).String())
}
