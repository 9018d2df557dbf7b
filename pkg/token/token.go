// Package token defines the raw segments produced by the SQL lexer.
//
// Segments are lossless: concatenating the Raw text of every segment
// returned for an input reproduces the input exactly.
package token

import (
	"fmt"
	"strings"
)

// SegmentType classifies a raw segment.
type SegmentType int

// Segment types.
const (
	TypeWhitespace  SegmentType = iota // spaces and tabs
	TypeNewline                        // \n or \r\n
	TypeComment                        // -- line, # line, /* block */
	TypeWord                           // keywords and unquoted identifiers
	TypeNumber                         // 123, 4.5, 1e10
	TypeString                         // 'literal'
	TypeQuotedIdent                    // "ident", `ident`
	TypeSymbol                         // operators and punctuation
)

func (t SegmentType) String() string {
	switch t {
	case TypeWhitespace:
		return "whitespace"
	case TypeNewline:
		return "newline"
	case TypeComment:
		return "comment"
	case TypeWord:
		return "word"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeQuotedIdent:
		return "quoted_identifier"
	case TypeSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("SEGMENT(%d)", int(t))
	}
}

// Segment is a single raw lexed element.
type Segment struct {
	Type SegmentType
	Raw  string
	Pos  Position
}

// IsCode reports whether the segment carries meaning for the parser.
// Whitespace, newlines and comments are non-code.
func (s Segment) IsCode() bool {
	switch s.Type {
	case TypeWhitespace, TypeNewline, TypeComment:
		return false
	default:
		return true
	}
}

// IsComment returns true for line and block comments.
func (s Segment) IsComment() bool {
	return s.Type == TypeComment
}

// Upper returns the raw text in upper case, used for keyword matching.
func (s Segment) Upper() string {
	return strings.ToUpper(s.Raw)
}

func (s Segment) String() string {
	return fmt.Sprintf("%s %q @%d:%d", s.Type, s.Raw, s.Pos.Line, s.Pos.Column)
}

// Join concatenates the raw text of segs.
func Join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Raw)
	}
	return b.String()
}
