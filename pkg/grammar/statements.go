package grammar

import (
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/token"
)

// Grammar names every dialect library provides.
const (
	FileGrammar      = "FileSegment"
	StatementGrammar = "StatementSegment"
	DelimiterGrammar = "DelimiterSegment"
)

// Statement is one statement found by SplitStatements.
type Statement struct {
	// Kind is the statement's leading keyword, upper-cased.
	Kind     string
	Segments []token.Segment
	Span     token.Span
	// Parsed is false for text the statement grammar could not match.
	Parsed bool
}

// Raw returns the statement source text.
func (s Statement) Raw() string {
	return token.Join(s.Segments)
}

// SplitStatements matches segs against the library's file grammar and
// splits the result into statements at top-level delimiters. Text the
// grammar rejects is reported as unparsed statements, one per delimiter.
func SplitStatements(ctx *ParseContext, segs []token.Segment) []Statement {
	file := Ref(FileGrammar)
	delim := Ref(DelimiterGrammar)

	var out []Statement
	rest := segs
	for {
		_, rest = splitNonCode(rest)
		if len(rest) == 0 {
			return out
		}
		res := file.Match(ctx, rest)
		out = append(out, splitOnDelimiters(ctx, delim, res.Matched, true)...)
		if res.IsComplete() {
			return out
		}

		// Skip one delimited chunk of unmatched text and try again.
		bad, remaining := cutAtDelimiter(ctx, delim, res.Unmatched)
		if len(bad) == 0 {
			bad, remaining = res.Unmatched, nil
		}
		out = append(out, splitOnDelimiters(ctx, delim, bad, false)...)
		rest = remaining
	}
}

// cutAtDelimiter returns the segments up to and including the first
// top-level delimiter, and the rest.
func cutAtDelimiter(ctx *ParseContext, delim Matcher, segs []token.Segment) (head, tail []token.Segment) {
	depth := 0
	for i, s := range segs {
		if !s.IsCode() {
			continue
		}
		switch s.Raw {
		case "(", "[":
			depth++
			continue
		case ")", "]":
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			if res := delim.Match(ctx, segs[i:]); res.HasMatch() {
				end := i + len(res.Matched)
				return segs[:end], segs[end:]
			}
		}
	}
	return nil, segs
}

func splitOnDelimiters(ctx *ParseContext, delim Matcher, segs []token.Segment, parsed bool) []Statement {
	var out []Statement
	for len(segs) > 0 {
		head, tail := cutAtDelimiter(ctx, delim, segs)
		if head == nil {
			head, tail = segs, nil
		}
		if stmt, ok := newStatement(ctx, delim, head, parsed); ok {
			out = append(out, stmt)
		}
		segs = tail
	}
	return out
}

// newStatement trims surrounding non-code and the trailing delimiter.
// ok is false when nothing but delimiters and non-code remain.
func newStatement(ctx *ParseContext, delim Matcher, segs []token.Segment, parsed bool) (Statement, bool) {
	_, segs = splitNonCode(segs)
	end := len(segs)
	for end > 0 {
		if !segs[end-1].IsCode() {
			end--
			continue
		}
		if delim.Match(ctx, segs[end-1:end]).HasMatch() {
			end--
			continue
		}
		break
	}
	segs = segs[:end]
	if len(segs) == 0 {
		return Statement{}, false
	}
	return Statement{
		Kind:     strings.ToUpper(segs[0].Raw),
		Segments: segs,
		Span:     token.SpanOf(segs),
		Parsed:   parsed,
	}, true
}
