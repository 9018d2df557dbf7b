package lint

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]RuleInfo),
}

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleInfo // keyed by upper-case code
}

// Register adds a rule to the global registry, replacing any rule with the
// same code. Call this from init() functions in rule packages.
func Register(rule RuleInfo) {
	rule.Code = strings.ToUpper(strings.TrimSpace(rule.Code))
	if rule.Code == "" {
		panic("lint: Register called with an empty rule code")
	}
	if !rule.InGroup(GroupAll) {
		rule.Groups = append([]string{GroupAll}, rule.Groups...)
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.Code] = rule
}

// Get returns a rule by code (case-insensitive).
func Get(code string) (RuleInfo, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[strings.ToUpper(strings.TrimSpace(code))]
	return rule, ok
}

// Lookup returns a rule by code or name.
func Lookup(codeOrName string) (RuleInfo, bool) {
	if rule, ok := Get(codeOrName); ok {
		return rule, true
	}
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	for _, rule := range globalRegistry.rules {
		if strings.EqualFold(rule.Name, codeOrName) {
			return rule, true
		}
	}
	return RuleInfo{}, false
}

// All returns every registered rule sorted by code.
func All() []RuleInfo {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleInfo, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Code < rules[j].Code })
	return rules
}

// Groups returns the names of all groups in use, sorted.
func Groups() []string {
	seen := make(map[string]struct{})
	for _, rule := range All() {
		for _, g := range rule.Groups {
			seen[g] = struct{}{}
		}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]RuleInfo)
}
