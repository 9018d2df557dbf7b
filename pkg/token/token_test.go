package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentIsCode(t *testing.T) {
	tests := []struct {
		typ  SegmentType
		want bool
	}{
		{TypeWhitespace, false},
		{TypeNewline, false},
		{TypeComment, false},
		{TypeWord, true},
		{TypeNumber, true},
		{TypeString, true},
		{TypeQuotedIdent, true},
		{TypeSymbol, true},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Segment{Type: tt.typ}.IsCode())
		})
	}
}

func TestSpanOf(t *testing.T) {
	segs := []Segment{
		{Type: TypeWord, Raw: "select", Pos: Position{Line: 1, Column: 1, Offset: 0}},
		{Type: TypeNewline, Raw: "\n", Pos: Position{Line: 1, Column: 7, Offset: 6}},
		{Type: TypeNumber, Raw: "1", Pos: Position{Line: 2, Column: 1, Offset: 7}},
	}
	span := SpanOf(segs)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, span.Start)
	assert.Equal(t, Position{Line: 2, Column: 2, Offset: 8}, span.End)
	assert.True(t, span.Contains(7))
	assert.False(t, span.Contains(8))

	assert.False(t, SpanOf(nil).IsValid())
}

func TestCommentBody(t *testing.T) {
	tests := []struct {
		raw  string
		kind CommentKind
		body string
	}{
		{"-- sqlfluff:dialect:bigquery", LineComment, "sqlfluff:dialect:bigquery"},
		{"# noqa", LineComment, "noqa"},
		{"/* block\n text */", BlockComment, "block\n text"},
	}
	for _, tt := range tests {
		c, ok := CommentFromSegment(Segment{Type: TypeComment, Raw: tt.raw, Pos: Position{Line: 1, Column: 1}})
		assert.True(t, ok)
		assert.Equal(t, tt.kind, c.Kind)
		assert.Equal(t, tt.body, c.Body())
	}

	_, ok := CommentFromSegment(Segment{Type: TypeWord, Raw: "x"})
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	segs := []Segment{{Raw: "a"}, {Raw: " "}, {Raw: "b"}}
	assert.Equal(t, "a b", Join(segs))
}
