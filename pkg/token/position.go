package token

import "unicode/utf8"

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// SpanOf returns the span covered by segs, or the zero Span when segs is empty.
func SpanOf(segs []Segment) Span {
	if len(segs) == 0 {
		return Span{}
	}
	last := segs[len(segs)-1]
	return Span{Start: segs[0].Pos, End: advance(last.Pos, last.Raw)}
}

// advance returns the position immediately after raw, starting at p.
func advance(p Position, raw string) Position {
	for _, r := range raw {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Offset += utf8.RuneLen(r)
	}
	return p
}
