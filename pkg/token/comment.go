package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment represents a SQL comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Body returns the comment text without its delimiters, trimmed.
func (c *Comment) Body() string {
	text := c.Text
	switch {
	case strings.HasPrefix(text, "--"):
		text = text[2:]
	case strings.HasPrefix(text, "#"):
		text = text[1:]
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(text[2:], "*/")
	}
	return strings.TrimSpace(text)
}

// CommentFromSegment converts a comment segment into a Comment.
// ok is false when seg is not a comment.
func CommentFromSegment(seg Segment) (c *Comment, ok bool) {
	if seg.Type != TypeComment {
		return nil, false
	}
	kind := LineComment
	if strings.HasPrefix(seg.Raw, "/*") {
		kind = BlockComment
	}
	return &Comment{
		Kind: kind,
		Text: seg.Raw,
		Span: Span{Start: seg.Pos, End: advance(seg.Pos, seg.Raw)},
	}, true
}
