// Package lexer splits SQL text into lossless raw segments.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/gofluff/pkg/token"
)

// LexError reports input the lexer could not segment.
type LexError struct {
	Pos token.Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// multiSymbols are the operators lexed as a single segment (longest first).
var multiSymbols = []string{"<=>", "::", "<=", ">=", "<>", "!=", "||", "->", "=>", ">>", "<<"}

// Lexer tokenizes SQL input into raw segments.
type Lexer struct {
	input string
	pos   int // current byte offset
	line  int // current line (1-based)
	col   int // current column (1-based)

	// HashComments enables MySQL style "# comment" lines.
	HashComments bool
}

// New creates a Lexer for input.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Lex segments input with the default settings.
func Lex(input string) ([]token.Segment, error) {
	return New(input).All()
}

// All returns every segment of the input.
func (l *Lexer) All() ([]token.Segment, error) {
	var segs []token.Segment
	for l.pos < len(l.input) {
		seg, err := l.next()
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Comments returns the comments found in input.
func Comments(input string) ([]*token.Comment, error) {
	segs, err := Lex(input)
	if err != nil {
		return nil, err
	}
	var out []*token.Comment
	for _, s := range segs {
		if c, ok := token.CommentFromSegment(s); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// next lexes a single segment starting at the current offset.
func (l *Lexer) next() (token.Segment, error) {
	start := l.position()
	ch := l.input[l.pos]

	var typ token.SegmentType
	switch {
	case ch == '\n':
		l.advance(1)
		typ = token.TypeNewline
	case ch == '\r' && l.peekAt(1) == '\n':
		l.advance(2)
		typ = token.TypeNewline
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f':
		for l.pos < len(l.input) {
			c := l.input[l.pos]
			if c != ' ' && c != '\t' && c != '\f' && (c != '\r' || l.peekAt(1) == '\n') {
				break
			}
			l.advance(1)
		}
		typ = token.TypeWhitespace
	case ch == '-' && l.peekAt(1) == '-', ch == '#' && l.HashComments:
		l.skipLine()
		typ = token.TypeComment
	case ch == '/' && l.peekAt(1) == '*':
		if err := l.skipBlockComment(start); err != nil {
			return token.Segment{}, err
		}
		typ = token.TypeComment
	case ch == '\'':
		if err := l.skipQuoted('\'', start, "unterminated string literal"); err != nil {
			return token.Segment{}, err
		}
		typ = token.TypeString
	case ch == '"' || ch == '`':
		if err := l.skipQuoted(ch, start, "unterminated quoted identifier"); err != nil {
			return token.Segment{}, err
		}
		typ = token.TypeQuotedIdent
	case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
		l.readNumber()
		typ = token.TypeNumber
	default:
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if isIdentStart(r) {
			l.readWord()
			typ = token.TypeWord
			break
		}
		typ = token.TypeSymbol
		matched := false
		for _, sym := range multiSymbols {
			if len(l.input)-l.pos >= len(sym) && l.input[l.pos:l.pos+len(sym)] == sym {
				l.advance(len(sym))
				matched = true
				break
			}
		}
		if !matched {
			l.advance(size)
		}
	}

	return token.Segment{Type: typ, Raw: l.input[start.Offset:l.pos], Pos: start}, nil
}

// advance moves n bytes forward, tracking line and column.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else if l.input[l.pos]&0xC0 != 0x80 {
			// count runes, not continuation bytes
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

// skipLine consumes up to (not including) the next newline.
func (l *Lexer) skipLine() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		if l.input[l.pos] == '\r' && l.peekAt(1) == '\n' {
			return
		}
		l.advance(1)
	}
}

func (l *Lexer) skipBlockComment(start token.Position) error {
	l.advance(2) // skip /*
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peekAt(1) == '/' {
			l.advance(2)
			return nil
		}
		l.advance(1)
	}
	return &LexError{Pos: start, Msg: "unterminated block comment"}
}

// skipQuoted consumes a quoted run; a doubled quote is an escape.
func (l *Lexer) skipQuoted(quote byte, start token.Position, msg string) error {
	l.advance(1) // opening quote
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && quote == '\'' && l.pos+1 < len(l.input) {
			l.advance(2)
			continue
		}
		if c == quote {
			if l.peekAt(1) == quote {
				l.advance(2)
				continue
			}
			l.advance(1)
			return nil
		}
		l.advance(1)
	}
	return &LexError{Pos: start, Msg: msg}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance(1)
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' && isDigit(l.peekAt(1)) {
		l.advance(1)
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.advance(1)
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		off := 1
		if c := l.peekAt(1); c == '+' || c == '-' {
			off = 2
		}
		if isDigit(l.peekAt(off)) {
			l.advance(off)
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.advance(1)
			}
		}
	}
}

// readWord reads an unquoted identifier or keyword.
func (l *Lexer) readWord() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentStart(r) && !unicode.IsDigit(r) && r != '$' {
			return
		}
		l.advance(size)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
