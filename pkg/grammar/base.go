package grammar

import (
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/token"
)

// KeywordMatcher matches a single word case-insensitively.
type KeywordMatcher struct {
	Word string
}

// Keyword matches the word w, ignoring case.
func Keyword(w string) *KeywordMatcher {
	return &KeywordMatcher{Word: strings.ToUpper(w)}
}

func (k *KeywordMatcher) Match(_ *ParseContext, segs []token.Segment) MatchResult {
	if len(segs) > 0 && segs[0].Type == token.TypeWord && segs[0].Upper() == k.Word {
		return MatchResult{Matched: segs[:1:1], Unmatched: segs[1:]}
	}
	return NoMatch(segs)
}

func (k *KeywordMatcher) Simple(*ParseContext) []string { return []string{k.Word} }
func (k *KeywordMatcher) IsOptional() bool              { return false }

// SymbolMatcher matches a single segment by its exact raw text.
type SymbolMatcher struct {
	Raw string
}

// Symbol matches the punctuation or operator raw.
func Symbol(raw string) *SymbolMatcher {
	return &SymbolMatcher{Raw: raw}
}

func (s *SymbolMatcher) Match(_ *ParseContext, segs []token.Segment) MatchResult {
	if len(segs) > 0 && segs[0].Raw == s.Raw {
		return MatchResult{Matched: segs[:1:1], Unmatched: segs[1:]}
	}
	return NoMatch(segs)
}

func (s *SymbolMatcher) Simple(*ParseContext) []string { return []string{strings.ToUpper(s.Raw)} }
func (s *SymbolMatcher) IsOptional() bool              { return false }

// CodeMatcher matches any single code segment.
type CodeMatcher struct{}

// Code matches one code segment of any kind.
func Code() CodeMatcher { return CodeMatcher{} }

func (CodeMatcher) Match(_ *ParseContext, segs []token.Segment) MatchResult {
	if len(segs) > 0 && segs[0].IsCode() {
		return MatchResult{Matched: segs[:1:1], Unmatched: segs[1:]}
	}
	return NoMatch(segs)
}

func (CodeMatcher) Simple(*ParseContext) []string { return nil }
func (CodeMatcher) IsOptional() bool              { return false }

// AnythingMatcher consumes segments greedily, optionally stopping before
// a terminator found outside brackets.
type AnythingMatcher struct {
	terminators []Matcher
}

// Anything matches every remaining segment.
func Anything() *AnythingMatcher { return &AnythingMatcher{} }

// Until returns a copy that stops before any of terms.
func (a *AnythingMatcher) Until(terms ...Matcher) *AnythingMatcher {
	return &AnythingMatcher{terminators: append(append([]Matcher{}, a.terminators...), terms...)}
}

func (a *AnythingMatcher) Match(ctx *ParseContext, segs []token.Segment) MatchResult {
	if len(a.terminators) == 0 {
		return MatchResult{Matched: segs[:len(segs):len(segs)]}
	}
	depth := 0
	for i, s := range segs {
		if !s.IsCode() {
			continue
		}
		switch s.Raw {
		case "(", "[", "{":
			depth++
			continue
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}
		for _, t := range a.terminators {
			if t.Match(ctx, segs[i:]).HasMatch() {
				// Trailing non-code before the terminator stays unmatched.
				end := i
				for end > 0 && !segs[end-1].IsCode() {
					end--
				}
				return MatchResult{Matched: segs[:end:end], Unmatched: segs[end:]}
			}
		}
	}
	return MatchResult{Matched: segs[:len(segs):len(segs)]}
}

func (a *AnythingMatcher) Simple(*ParseContext) []string { return nil }
func (a *AnythingMatcher) IsOptional() bool              { return true }

type optionalMatcher struct {
	Matcher
}

// Optional marks m as optional within a Sequence.
func Optional(m Matcher) Matcher {
	return optionalMatcher{Matcher: m}
}

func (optionalMatcher) IsOptional() bool { return true }

// RefMatcher resolves a named grammar from the context's library.
type RefMatcher struct {
	Name string
}

// Ref refers to the grammar called name. Names the library does not
// define fall back to a keyword match when the library knows the word.
func Ref(name string) *RefMatcher {
	return &RefMatcher{Name: name}
}

func (r *RefMatcher) resolve(ctx *ParseContext) (Matcher, bool) {
	if ctx.Dialect == nil {
		return nil, false
	}
	if m, ok := ctx.Dialect.Ref(r.Name); ok {
		return m, true
	}
	if ctx.Dialect.IsKeyword(r.Name) {
		return Keyword(r.Name), true
	}
	return nil, false
}

func (r *RefMatcher) Match(ctx *ParseContext, segs []token.Segment) MatchResult {
	m, ok := r.resolve(ctx)
	if !ok {
		ctx.Logger.Debug("unresolved grammar reference", "ref", r.Name)
		return NoMatch(segs)
	}
	child, ok := ctx.Deeper()
	if !ok {
		ctx.Logger.Debug("recursion limit reached", "ref", r.Name, "depth", ctx.depth)
		return NoMatch(segs)
	}
	res := m.Match(child, segs)
	if res.HasMatch() {
		ctx.Logger.Debug("matched", "ref", r.Name, "depth", child.depth, "segments", len(res.Matched))
	}
	return res
}

func (r *RefMatcher) Simple(ctx *ParseContext) []string {
	m, ok := r.resolve(ctx)
	if !ok || !ctx.enter(r.Name) {
		return nil
	}
	defer ctx.leave(r.Name)
	return m.Simple(ctx)
}

func (r *RefMatcher) IsOptional() bool { return false }
