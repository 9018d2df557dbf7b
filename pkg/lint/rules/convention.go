package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(conventionRules)
}

var conventionRules = []lint.RuleInfo{
	{
		Code:        "L038",
		Name:        "convention.select_trailing_comma",
		Groups:      groups("convention", true),
		Description: "Trailing commas within select clause.",
		ConfigKeys:  []string{"select_clause_trailing_comma"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L047",
		Name:        "convention.count_rows",
		Groups:      groups("convention", false),
		Description: "Use consistent syntax to express \"count number of rows\".",
		ConfigKeys:  []string{"prefer_count_1", "prefer_count_0"},
		Severity:    lint.SeverityInfo,
		BadExample:  "SELECT count(0)\nFROM foo",
		GoodExample: "SELECT count(*)\nFROM foo",
	},
	{
		Code:        "L049",
		Name:        "convention.is_null",
		Groups:      groups("convention", true),
		Description: "Comparisons with NULL should use \"IS\" or \"IS NOT\".",
		Severity:    lint.SeverityError,
		BadExample:  "SELECT a\nFROM foo\nWHERE a = NULL",
		GoodExample: "SELECT a\nFROM foo\nWHERE a IS NULL",
	},
}
