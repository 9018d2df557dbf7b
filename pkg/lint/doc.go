// Package lint holds the rule catalogue and everything the configuration
// says about rules: which are selected, their options, their severity and
// the noqa directives that silence them.
//
// # Rule Registration
//
// Rules are registered via init() functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/gofluff/pkg/lint/rules"
//
// # Selection
//
// The core "rules" and "exclude_rules" settings are lists of codes, rule
// names, group names or glob patterns:
//
//	rules = L01*, aliasing
//	exclude_rules = L016
//
// An empty allow list selects every rule. Deny entries win over allow
// entries.
//
// # Options
//
// A rule reads the generic "rules" keys it declares in ConfigKeys plus its
// own "rules:<code>" section, the latter taking precedence:
//
//	[sqlfluff:rules]
//	max_line_length = 80
//
//	[sqlfluff:rules:L016]
//	max_line_length = 120
package lint
