package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/internal/config"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/builtin"
)

func TestOptionsFor(t *testing.T) {
	useTestRules(t)

	t.Run("defaults", func(t *testing.T) {
		opts := OptionsFor(config.Defaults(), "L016")
		assert.Equal(t, []string{"ignore_comment_lines", "indent_unit", "max_line_length", "tab_space_size"}, opts.Keys())
		assert.Equal(t, 80, opts.GetInt("max_line_length", 0))
		assert.Equal(t, "space", opts.GetString("indent_unit", ""))
		assert.False(t, opts.GetBool("ignore_comment_lines", true))
	})

	t.Run("rule section wins", func(t *testing.T) {
		cfg, err := config.New(map[string]any{
			"rules": map[string]any{
				"max_line_length": 100,
				"L016":            map[string]any{"max_line_length": 120},
			},
		})
		require.NoError(t, err)

		opts := OptionsFor(cfg, "l016")
		assert.Equal(t, 120, opts.GetInt("max_line_length", 0))
		assert.Equal(t, 4, opts.GetInt("tab_space_size", 0))
	})

	t.Run("unregistered rule sees only its section", func(t *testing.T) {
		cfg, err := config.New(map[string]any{
			"rules": map[string]any{"L099": map[string]any{"style": "strict"}},
		})
		require.NoError(t, err)

		assert.Equal(t, Options{"style": "strict"}, OptionsFor(cfg, "L099"))
		assert.Empty(t, OptionsFor(cfg, "L098"))
	})
}

func TestOptions_Getters(t *testing.T) {
	opts := Options{
		"policy":  "upper",
		"none":    nil,
		"size":    "8",
		"float":   2.0,
		"flag":    "True",
		"real":    true,
		"words":   "select, from",
		"garbage": []int{1},
	}

	assert.Equal(t, "upper", opts.GetString("policy", "x"))
	assert.Equal(t, "x", opts.GetString("none", "x"))
	assert.Equal(t, "x", opts.GetString("missing", "x"))

	assert.Equal(t, 8, opts.GetInt("size", 0))
	assert.Equal(t, 2, opts.GetInt("float", 0))
	assert.Equal(t, 5, opts.GetInt("policy", 5))

	assert.True(t, opts.GetBool("flag", false))
	assert.True(t, opts.GetBool("real", false))
	assert.True(t, opts.GetBool("policy", true))

	assert.Equal(t, []string{"select", "from"}, opts.GetStringSlice("words", nil))
	assert.Empty(t, opts.GetStringSlice("none", []string{"d"}))
	assert.Equal(t, []string{"d"}, opts.GetStringSlice("missing", []string{"d"}))

	assert.Equal(t, "upper", GetOption(opts, "policy", ""))
	assert.Equal(t, 3, GetOption(opts, "policy", 3))
	assert.Equal(t, "d", GetOption[string](nil, "policy", "d"))
}

func TestOptions_TypedGettersFallBack(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantInt  int
		wantBool bool
	}{
		{name: "nil options", opts: nil, wantInt: 7, wantBool: true},
		{name: "missing key", opts: Options{"other": 1}, wantInt: 7, wantBool: true},
		{name: "none value", opts: Options{"v": nil}, wantInt: 7, wantBool: true},
		{name: "wrong type", opts: Options{"v": []string{"x"}}, wantInt: 7, wantBool: true},
		{name: "unparseable text", opts: Options{"v": "abc"}, wantInt: 7, wantBool: true},
		{name: "native int", opts: Options{"v": 3}, wantInt: 3, wantBool: true},
		{name: "native bool", opts: Options{"v": false}, wantInt: 7, wantBool: false},
		{name: "text bool", opts: Options{"v": "False"}, wantInt: 7, wantBool: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantInt, tt.opts.GetInt("v", 7))
			assert.Equal(t, tt.wantBool, tt.opts.GetBool("v", true))
		})
	}
}
