package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gofluff/pkg/grammar"
)

func TestKeywords(t *testing.T) {
	d := NewDialect("test").
		Reserved("select", "from").
		Unreserved("temp").
		Build()

	tests := []struct {
		word     string
		keyword  bool
		reserved bool
	}{
		{"SELECT", true, true},
		{"select", true, true}, // case insensitive
		{"temp", true, false},
		{"users", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.keyword, d.IsKeyword(tt.word))
			assert.Equal(t, tt.reserved, d.IsReserved(tt.word))
		})
	}
	assert.Equal(t, []string{"FROM", "SELECT"}, d.ReservedKeywords())
}

func TestReservedAndUnreservedAreExclusive(t *testing.T) {
	d := NewDialect("test").Reserved("limit").Unreserved("limit").Build()
	assert.False(t, d.IsReserved("limit"))
	assert.Equal(t, []string{"LIMIT"}, d.UnreservedKeywords())
}

func TestCopyIsIndependent(t *testing.T) {
	base := NewDialect("base").
		Reserved("select").
		Grammar("StatementSegment", grammar.OneOf(grammar.Keyword("select"))).
		Build()

	child := base.Copy("child").
		Reserved("qualify").
		ExtendGrammar("StatementSegment", grammar.Keyword("use")).
		Build()

	assert.Equal(t, "base", child.Inherits)
	assert.True(t, child.IsKeyword("qualify"))
	assert.False(t, base.IsKeyword("qualify"))

	baseStmt, ok := base.Ref("StatementSegment")
	require.True(t, ok)
	childStmt, ok := child.Ref("StatementSegment")
	require.True(t, ok)
	assert.Len(t, baseStmt.(*grammar.AnyOf).Options(), 1)
	assert.Len(t, childStmt.(*grammar.AnyOf).Options(), 2)
}

func TestExtendGrammarPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		NewDialect("test").ExtendGrammar("Nope", grammar.Keyword("x"))
	})
}

func TestRegistry(t *testing.T) {
	d := NewDialect("Registry_Test").Build()
	Register(d)

	got, ok := Get("registry_test")
	require.True(t, ok)
	assert.Same(t, d, got)
	assert.Contains(t, List(), "registry_test")

	_, ok = Get("missing")
	assert.False(t, ok)
}
