package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{" json ", ModeJSON},
		{"yaml", ModeYAML},
		{"xml", ModeAuto},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeText, NewRendererWithTTY(&out, &errOut, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&out, &errOut, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&out, &errOut, true, ModeJSON).EffectiveMode())

	// A bytes.Buffer is never a terminal.
	assert.False(t, NewRenderer(&out, &errOut, ModeAuto).IsTTY())
}

func TestRenderer_Structured(t *testing.T) {
	value := map[string]any{"dialect": "ansi", "rules": []string{"L010"}}

	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeJSON)
	ok, err := r.Structured(value)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"dialect":"ansi","rules":["L010"]}`, out.String())

	out.Reset()
	r = NewRendererWithTTY(&out, &out, false, ModeYAML)
	ok, err = r.Structured(value)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.YAMLEq(t, "dialect: ansi\nrules: [L010]\n", out.String())

	out.Reset()
	ok, err = NewRendererWithTTY(&out, &out, false, ModeText).Structured(value)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"Code", "Name"}
	rows := [][]string{{"L010", "capitalisation.keywords"}}

	var md bytes.Buffer
	NewRendererWithTTY(&md, &md, false, ModeMarkdown).Table(header, rows)
	assert.Contains(t, md.String(), "| Code | Name |")
	assert.Contains(t, md.String(), "| L010 | capitalisation.keywords |")

	var text bytes.Buffer
	NewRendererWithTTY(&text, &text, true, ModeText).Table(header, rows)
	assert.Contains(t, text.String(), "┌")
	assert.Contains(t, text.String(), "L010")
}

func TestRenderer_StylesArePlainWithoutTTY(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeAuto)

	assert.Equal(t, "heading", r.Styles().Header1.Render("heading"))

	r.Warnf("unknown key %q", "foo")
	assert.Equal(t, "warning: unknown key \"foo\"\n", errOut.String())

	tty := NewRendererWithTTY(&out, &errOut, true, ModeText)
	tty.SetNoColor(true)
	assert.Equal(t, "heading", tty.Styles().Bold.Render("heading"))
}
