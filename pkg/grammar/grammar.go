// Package grammar provides parser combinators that match raw lexed
// segments against dialect grammars.
//
// Grammars are built from a small set of matchers (Keyword, Symbol, Ref,
// Sequence, AnyNumberOf, OneOf, Anything) and resolved by name through a
// Library, which a dialect implements.
package grammar

import (
	"log/slog"

	"github.com/leapstack-labs/gofluff/pkg/token"
)

// Library resolves named grammars. Dialects implement it.
type Library interface {
	Ref(name string) (Matcher, bool)
	IsKeyword(word string) bool
}

// Matcher matches a prefix of a segment slice.
type Matcher interface {
	// Match consumes a prefix of segs. Segments it cannot use are
	// returned in the result's Unmatched.
	Match(ctx *ParseContext, segs []token.Segment) MatchResult
	// Simple returns the upper-case raw strings one of which must start
	// any match, or nil if no such set can be computed.
	Simple(ctx *ParseContext) []string
	IsOptional() bool
}

// MatchResult splits input segments into a matched prefix and the rest.
type MatchResult struct {
	Matched   []token.Segment
	Unmatched []token.Segment
}

// NoMatch returns a result that matched nothing.
func NoMatch(segs []token.Segment) MatchResult {
	return MatchResult{Unmatched: segs}
}

// HasMatch reports whether at least one segment was matched.
func (r MatchResult) HasMatch() bool {
	return len(r.Matched) > 0
}

// IsComplete reports whether every input segment was matched.
func (r MatchResult) IsComplete() bool {
	return len(r.Unmatched) == 0
}

// RawMatched returns the concatenated raw text of the matched segments.
func (r MatchResult) RawMatched() string {
	return token.Join(r.Matched)
}

// ParseContext carries state through a match.
type ParseContext struct {
	Dialect Library
	Logger  *slog.Logger
	// Recurse limits how deeply references are expanded; 0 is unlimited.
	Recurse int

	depth  int
	crumbs map[string]bool
}

// NewContext creates a ParseContext for lib.
func NewContext(lib Library, logger *slog.Logger, recurse int) *ParseContext {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ParseContext{Dialect: lib, Logger: logger, Recurse: recurse}
}

// Depth returns the current reference depth.
func (c *ParseContext) Depth() int {
	return c.depth
}

// Deeper returns a child context one level down. ok is false when the
// recursion limit has been reached.
func (c *ParseContext) Deeper() (child *ParseContext, ok bool) {
	if c.Recurse > 0 && c.depth >= c.Recurse {
		return c, false
	}
	cp := *c
	cp.depth++
	return &cp, true
}

// enter marks a reference as being resolved for Simple; it reports false
// if the reference is already on the stack.
func (c *ParseContext) enter(name string) bool {
	if c.crumbs == nil {
		c.crumbs = make(map[string]bool)
	}
	if c.crumbs[name] {
		return false
	}
	c.crumbs[name] = true
	return true
}

func (c *ParseContext) leave(name string) {
	delete(c.crumbs, name)
}

// splitNonCode splits segs into its leading non-code run and the rest.
func splitNonCode(segs []token.Segment) (pre, rest []token.Segment) {
	i := 0
	for i < len(segs) && !segs[i].IsCode() {
		i++
	}
	return segs[:i], segs[i:]
}

// firstCode returns the index of the first code segment, or -1.
func firstCode(segs []token.Segment) int {
	for i, s := range segs {
		if s.IsCode() {
			return i
		}
	}
	return -1
}

func concat(parts ...[]token.Segment) []token.Segment {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]token.Segment, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
