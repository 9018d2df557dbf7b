package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr string
	}{
		{name: "none", input: nil, want: "None"},
		{name: "string", input: "analytics", want: `"analytics"`},
		{name: "coerced int", input: 80, want: "80"},
		{name: "int64", input: int64(1) << 40, want: "1099511627776"},
		{name: "coerced float", input: 1.5, want: "1.5"},
		{name: "coerced bool", input: false, want: "False"},
		{name: "comma list", input: []string{".sql", ".dml"}, want: `[".sql", ".dml"]`},
		{name: "mixed list", input: []any{"L010", 3, nil}, want: `["L010", 3, None]`},
		{name: "flat section sorted", input: map[string]string{"b": "2", "a": "1"}, want: `{"a": "1", "b": "2"}`},
		{name: "nested section", input: map[string]any{"L010": map[string]any{"policy": "upper"}}, want: `{"L010": {"policy": "upper"}}`},
		{name: "starlark value", input: starlark.MakeInt(3), want: "3"},
		{name: "unsupported", input: struct{}{}, wantErr: "cannot use struct {}"},
		{name: "unsupported in list", input: []any{"a", struct{}{}}, wantErr: "item 1"},
		{name: "unsupported in section", input: map[string]any{"k": []int{1}}, wantErr: `key "k"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromConfig(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		name  string
		input starlark.Value
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "none", input: starlark.None, want: "None"},
		{name: "string unquoted", input: starlark.String("abc"), want: "abc"},
		{name: "int", input: starlark.MakeInt(3), want: "3"},
		{name: "bool", input: starlark.True, want: "True"},
		{name: "list repr", input: starlark.NewList([]starlark.Value{starlark.String("a")}), want: `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToText(tt.input))
		})
	}
}

func TestStringDict(t *testing.T) {
	got, err := StringDict(map[string]any{"schema": "analytics", "limit": 10})
	require.NoError(t, err)
	assert.Equal(t, starlark.String("analytics"), got["schema"])
	assert.Equal(t, "10", got["limit"].String())

	_, err = StringDict(map[string]any{"bad": struct{}{}})
	assert.ErrorContains(t, err, `variable "bad"`)
}
