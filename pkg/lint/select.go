package lint

import (
	"path"
	"strings"
)

// Select returns the rules of all that the allow list admits and the deny
// list does not. Entries are codes, rule names, group names or glob
// patterns such as "L01*". An empty allow list admits every rule; deny
// wins over allow.
func Select(all []RuleInfo, allow, deny []string) []RuleInfo {
	var out []RuleInfo
	for _, rule := range all {
		if len(allow) > 0 && !matchesAny(rule, allow) {
			continue
		}
		if matchesAny(rule, deny) {
			continue
		}
		out = append(out, rule)
	}
	return out
}

// Unmatched returns the entries of patterns that select no rule in all.
func Unmatched(all []RuleInfo, patterns []string) []string {
	var out []string
	for _, p := range patterns {
		found := false
		for _, rule := range all {
			if Matches(rule, p) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(rule RuleInfo, patterns []string) bool {
	for _, p := range patterns {
		if Matches(rule, p) {
			return true
		}
	}
	return false
}

// Matches reports whether a selection entry refers to rule.
func Matches(rule RuleInfo, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	if strings.EqualFold(pattern, rule.Code) || strings.EqualFold(pattern, rule.Name) || rule.InGroup(pattern) {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return false
	}
	// A malformed pattern matches nothing.
	upper := strings.ToUpper(pattern)
	if ok, err := path.Match(upper, rule.Code); err == nil && ok {
		return true
	}
	ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(rule.Name))
	return err == nil && ok
}
