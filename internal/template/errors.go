package template

import "fmt"

// Error is implemented by every error the lexer, parser and renderer return.
// Callers use Position to map a failure back to the source file.
type Error interface {
	error
	Position() Position
	Message() string
}

// located carries a source position and a message without the position
// prefix. The concrete error types embed it.
type located struct {
	pos Position
	msg string
}

func (e *located) Position() Position { return e.pos }

func (e *located) Message() string { return e.msg }

func (e *located) Error() string { return e.pos.prefix() + e.msg }

// prefix is "file:line:col: ", or "line:col: " for unnamed templates.
func (p Position) prefix() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d: ", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d: ", p.File, p.Line, p.Column)
}

// LexError reports an unterminated or malformed tag.
type LexError struct{ located }

func NewLexError(pos Position, msg string) *LexError {
	return &LexError{located{pos, msg}}
}

func NewLexErrorf(pos Position, format string, args ...any) *LexError {
	return NewLexError(pos, fmt.Sprintf(format, args...))
}

// ParseError reports a statement the parser cannot understand.
type ParseError struct{ located }

func NewParseError(pos Position, msg string) *ParseError {
	return &ParseError{located{pos, msg}}
}

func NewParseErrorf(pos Position, format string, args ...any) *ParseError {
	return NewParseError(pos, fmt.Sprintf(format, args...))
}

// RenderError reports a failure while evaluating the template. Cause holds
// the Starlark error when there is one.
type RenderError struct {
	located
	Cause error
}

func NewRenderErrorf(pos Position, format string, args ...any) *RenderError {
	return &RenderError{located: located{pos, fmt.Sprintf(format, args...)}}
}

func WrapRenderError(pos Position, msg string, cause error) *RenderError {
	return &RenderError{located: located{pos, msg}, Cause: cause}
}

// Message includes the cause.
func (e *RenderError) Message() string {
	if e.Cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.Cause.Error()
}

func (e *RenderError) Error() string { return e.pos.prefix() + e.Message() }

func (e *RenderError) Unwrap() error { return e.Cause }

// UnmatchedBlockError reports a block left open at the end of the template,
// or a closing or branch tag with nothing to attach to.
type UnmatchedBlockError struct {
	located
	BlockKind StmtKind
}

func NewUnmatchedBlockError(pos Position, kind StmtKind) *UnmatchedBlockError {
	var msg string
	switch kind {
	case StmtFor, StmtIf, StmtMacro:
		msg = fmt.Sprintf("unclosed '%s' block (missing 'end%s')", kind, kind)
	case StmtEndFor, StmtEndIf, StmtEndMacro:
		msg = fmt.Sprintf("'%s' without matching '%s'", kind, kind.String()[len("end"):])
	case StmtElse, StmtElif:
		msg = fmt.Sprintf("'%s' without matching 'if'", kind)
	default:
		msg = fmt.Sprintf("unmatched block: %s", kind)
	}
	return &UnmatchedBlockError{located: located{pos, msg}, BlockKind: kind}
}
