// Package rules registers the builtin rule catalogue, L001 to L049.
//
// Rules are organized by category:
//   - layout: whitespace, indentation, line length and commas
//   - capitalisation: keywords, identifiers, functions and literals
//   - aliasing: table and column aliases
//   - ambiguous: constructs whose meaning depends on the engine
//   - references: qualification and resolution of column references
//   - structure: query shape
//   - convention: preferred spellings of equivalent SQL
//   - jinja: template tag style
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/gofluff/pkg/lint/rules"
package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func register(rules []lint.RuleInfo) {
	for _, r := range rules {
		lint.Register(r)
	}
}

func groups(category string, core bool) []string {
	if core {
		return []string{lint.GroupAll, lint.GroupCore, category}
	}
	return []string{lint.GroupAll, category}
}
