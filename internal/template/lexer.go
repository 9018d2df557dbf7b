package template

import (
	"strings"
	"unicode/utf8"
)

// TokenType identifies the type of token.
type TokenType int

// TokenType constants for template token types.
const (
	TokenText    TokenType = iota // Literal text (SQL)
	TokenExpr                     // Expression content (between {{ and }})
	TokenStmt                     // Statement content (between {% and %})
	TokenComment                  // Comment content (between {# and #})
	TokenEOF                      // End of input
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TEXT"
	case TokenExpr:
		return "EXPR"
	case TokenStmt:
		return "STMT"
	case TokenComment:
		return "COMMENT"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token. Span covers the whole tag including
// its delimiters so rendered output can be traced back to the source.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
	Span  Span

	// TrimLeft and TrimRight record the `-` whitespace control markers.
	TrimLeft  bool
	TrimRight bool
}

type delimiter struct {
	open, close string
	typ         TokenType
	quoted      bool // quotes may hide the closing delimiter
}

var delimiters = []delimiter{
	{open: "{{", close: "}}", typ: TokenExpr, quoted: true},
	{open: "{%", close: "%}", typ: TokenStmt, quoted: true},
	{open: "{#", close: "#}", typ: TokenComment},
}

// Lexer tokenizes a template string.
type Lexer struct {
	input    string
	file     string
	pos      int // current position in input
	line     int // current line number (1-based)
	col      int // current column number (1-based)
	start    int // offset at start of current token
	lastLine int // line at start of current token
	lastCol  int // column at start of current token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input, file string) *Lexer {
	return &Lexer{
		input: input,
		file:  file,
		line:  1,
		col:   1,
	}
}

// Tokenize converts the input into a slice of tokens ending with TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}

func (l *Lexer) nextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.position(), Span: Span{Start: l.pos, End: l.pos}}, nil
	}
	if d, ok := l.openDelimiter(); ok {
		return l.scanTag(d)
	}
	return l.scanText()
}

func (l *Lexer) openDelimiter() (delimiter, bool) {
	for _, d := range delimiters {
		if l.matchString(d.open) {
			return d, true
		}
	}
	return delimiter{}, false
}

// scanText scans literal text until a delimiter or EOF.
func (l *Lexer) scanText() (Token, error) {
	l.markStart()

	for l.pos < len(l.input) {
		if _, ok := l.openDelimiter(); ok {
			break
		}
		l.advance()
	}

	if l.pos == l.start {
		return Token{}, NewLexError(l.position(), "unexpected state in lexer")
	}

	return Token{
		Type:  TokenText,
		Value: l.input[l.start:l.pos],
		Pos:   l.startPosition(),
		Span:  Span{Start: l.start, End: l.pos},
	}, nil
}

// scanTag scans {{ expr }}, {% stmt %} and {# comment #} tags.
func (l *Lexer) scanTag(d delimiter) (Token, error) {
	l.markStart()
	l.skip(len(d.open))

	tok := Token{Type: d.typ, Pos: l.startPosition()}
	if l.matchString("-") {
		tok.TrimLeft = true
		l.skip(1)
	}

	bodyStart := l.pos
	var quote rune
	depth := 0 // nested braces of dict literals
	for l.pos < len(l.input) {
		r := l.peek()
		switch {
		case quote != 0:
			if r == '\\' {
				l.advance()
			} else if r == quote {
				quote = 0
			}
		case d.quoted && (r == '\'' || r == '"'):
			quote = r
		case d.quoted && r == '{':
			depth++
		case d.quoted && r == '}' && depth > 0:
			depth--
		case l.matchString(d.close):
			body := l.input[bodyStart:l.pos]
			if strings.HasSuffix(body, "-") {
				tok.TrimRight = true
				body = body[:len(body)-1]
			}
			l.skip(len(d.close))
			tok.Value = strings.TrimSpace(body)
			tok.Span = Span{Start: l.start, End: l.pos}
			return tok, nil
		}
		l.advance()
	}

	return Token{}, NewLexErrorf(l.startPosition(), "unclosed %s: missing '%s'", d.typ.describe(), d.close)
}

func (t TokenType) describe() string {
	switch t {
	case TokenExpr:
		return "expression"
	case TokenStmt:
		return "statement"
	case TokenComment:
		return "comment"
	default:
		return "tag"
	}
}

// peek returns the current rune without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// advance moves to the next rune, updating position tracking.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// skip advances over n bytes of single-line ASCII delimiter text.
func (l *Lexer) skip(n int) {
	l.pos += n
	l.col += n
}

// matchString checks if the input at current position matches s.
func (l *Lexer) matchString(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// markStart records the start position for the current token.
func (l *Lexer) markStart() {
	l.start = l.pos
	l.lastLine = l.line
	l.lastCol = l.col
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{File: l.file, Line: l.line, Column: l.col, Offset: l.pos}
}

// startPosition returns the position where the current token started.
func (l *Lexer) startPosition() Position {
	return Position{File: l.file, Line: l.lastLine, Column: l.lastCol, Offset: l.start}
}
