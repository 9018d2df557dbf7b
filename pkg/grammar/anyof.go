package grammar

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/token"
)

// AnyOf matches any of its options a configurable number of times.
type AnyOf struct {
	elems     []Matcher
	minTimes  int
	maxTimes  int // 0 means unlimited
	exclude   Matcher
	allowGaps bool
	optional  bool
}

// AnyNumberOf matches any of elems zero or more times.
func AnyNumberOf(elems ...Matcher) *AnyOf {
	return &AnyOf{elems: elems, allowGaps: true}
}

// OneOf matches exactly one of elems.
func OneOf(elems ...Matcher) *AnyOf {
	return AnyNumberOf(elems...).WithMinTimes(1).WithMaxTimes(1)
}

func (a *AnyOf) clone() *AnyOf {
	cp := *a
	cp.elems = slices.Clone(a.elems)
	return &cp
}

// WithMinTimes sets the minimum number of matches.
func (a *AnyOf) WithMinTimes(n int) *AnyOf {
	cp := a.clone()
	cp.minTimes = n
	return cp
}

// WithMaxTimes sets the maximum number of matches; 0 is unlimited.
func (a *AnyOf) WithMaxTimes(n int) *AnyOf {
	cp := a.clone()
	cp.maxTimes = n
	return cp
}

// WithExclude sets a matcher that, when it matches, prevents any match.
func (a *AnyOf) WithExclude(m Matcher) *AnyOf {
	cp := a.clone()
	cp.exclude = m
	return cp
}

// WithAllowGaps controls whether non-code is consumed between matches.
func (a *AnyOf) WithAllowGaps(allow bool) *AnyOf {
	cp := a.clone()
	cp.allowGaps = allow
	return cp
}

// AsOptional marks the grammar as optional.
func (a *AnyOf) AsOptional() *AnyOf {
	cp := a.clone()
	cp.optional = true
	return cp
}

// Copy returns a copy with insert appended to the options, used by
// dialects that extend an inherited grammar.
func (a *AnyOf) Copy(insert ...Matcher) *AnyOf {
	cp := a.clone()
	cp.elems = append(cp.elems, insert...)
	return cp
}

// Options returns the option matchers.
func (a *AnyOf) Options() []Matcher {
	return slices.Clone(a.elems)
}

func (a *AnyOf) IsOptional() bool {
	return a.optional || a.minTimes == 0
}

// Simple is the union of every option's simple set, or nil when any
// option is not simple.
func (a *AnyOf) Simple(ctx *ParseContext) []string {
	var out []string
	for _, elem := range a.elems {
		simple := elem.Simple(ctx)
		if simple == nil {
			return nil
		}
		out = append(out, simple...)
	}
	return out
}

func (a *AnyOf) Match(ctx *ParseContext, segs []token.Segment) MatchResult {
	if a.exclude != nil {
		if a.exclude.Match(ctx, segs).HasMatch() {
			return NoMatch(segs)
		}
	}

	var matched []token.Segment
	unmatched := segs
	n := 0
	for {
		if a.maxTimes > 0 && n >= a.maxTimes {
			return MatchResult{Matched: matched, Unmatched: unmatched}
		}
		if len(unmatched) == 0 {
			if n >= a.minTimes {
				return MatchResult{Matched: matched, Unmatched: unmatched}
			}
			return NoMatch(segs)
		}

		beforeGap := unmatched
		var pre []token.Segment
		if n > 0 && a.allowGaps {
			pre, unmatched = splitNonCode(unmatched)
		}

		res := a.matchOnce(ctx, unmatched)
		if !res.HasMatch() {
			if n >= a.minTimes {
				return MatchResult{Matched: matched, Unmatched: beforeGap}
			}
			return NoMatch(segs)
		}
		matched = concat(matched, pre, res.Matched)
		unmatched = res.Unmatched
		n++
	}
}

// matchOnce tries every option that survives pruning. The first complete
// match wins; otherwise the longest partial match, earliest on ties.
func (a *AnyOf) matchOnce(ctx *ParseContext, segs []token.Segment) MatchResult {
	options := a.prune(ctx, segs)
	if len(options) == 0 {
		return NoMatch(segs)
	}

	var best MatchResult
	bestLen := 0
	for _, opt := range options {
		res := opt.Match(ctx, segs)
		if res.IsComplete() && res.HasMatch() {
			return res
		}
		if !res.HasMatch() {
			continue
		}
		if l := len(res.RawMatched()); l > bestLen {
			best, bestLen = res, l
		}
	}
	if bestLen > 0 {
		return best
	}
	return NoMatch(segs)
}

// prune drops simple options that cannot start a match on segs.
// Whitespace-only simple strings only need to be present somewhere.
func (a *AnyOf) prune(ctx *ParseContext, segs []token.Segment) []Matcher {
	var first string
	if i := firstCode(segs); i >= 0 {
		first = segs[i].Upper()
	}

	var available []Matcher
	for _, opt := range a.elems {
		simple := opt.Simple(ctx)
		if simple == nil {
			available = append(available, opt)
			continue
		}
		for _, s := range simple {
			if strings.TrimSpace(s) == "" {
				if containsRaw(segs, s) {
					available = append(available, opt)
					break
				}
				continue
			}
			if s == first {
				available = append(available, opt)
				break
			}
		}
	}
	return available
}

func containsRaw(segs []token.Segment, raw string) bool {
	for _, s := range segs {
		if s.Raw == raw {
			return true
		}
	}
	return false
}
