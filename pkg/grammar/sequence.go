package grammar

import "github.com/leapstack-labs/gofluff/pkg/token"

// SequenceMatcher matches its elements one after another.
type SequenceMatcher struct {
	elems     []Matcher
	allowGaps bool
}

// Sequence matches elems in order. Non-code segments between elements
// are consumed unless gaps are disabled with WithAllowGaps(false).
func Sequence(elems ...Matcher) *SequenceMatcher {
	return &SequenceMatcher{elems: elems, allowGaps: true}
}

// WithAllowGaps returns a copy with gap handling set to allow.
func (s *SequenceMatcher) WithAllowGaps(allow bool) *SequenceMatcher {
	cp := *s
	cp.allowGaps = allow
	return &cp
}

func (s *SequenceMatcher) Match(ctx *ParseContext, segs []token.Segment) MatchResult {
	var matched []token.Segment
	rest := segs

	for _, elem := range s.elems {
		candidate := rest
		var pre []token.Segment
		if s.allowGaps {
			pre, candidate = splitNonCode(rest)
		}

		if len(candidate) == 0 {
			if elem.IsOptional() {
				continue
			}
			return NoMatch(segs)
		}

		res := elem.Match(ctx, candidate)
		if !res.HasMatch() {
			if elem.IsOptional() {
				continue
			}
			return NoMatch(segs)
		}
		matched = concat(matched, pre, res.Matched)
		rest = res.Unmatched
	}
	return MatchResult{Matched: matched, Unmatched: rest}
}

// Simple is the union of the simple sets of the leading optional elements
// and the first required one.
func (s *SequenceMatcher) Simple(ctx *ParseContext) []string {
	var out []string
	for _, elem := range s.elems {
		simple := elem.Simple(ctx)
		if simple == nil {
			return nil
		}
		out = append(out, simple...)
		if !elem.IsOptional() {
			return out
		}
	}
	return nil
}

func (s *SequenceMatcher) IsOptional() bool {
	for _, elem := range s.elems {
		if !elem.IsOptional() {
			return false
		}
	}
	return true
}
