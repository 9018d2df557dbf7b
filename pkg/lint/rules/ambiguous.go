package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(ambiguousRules)
}

var ambiguousRules = []lint.RuleInfo{
	{
		Code:        "L021",
		Name:        "ambiguous.distinct",
		Groups:      groups("ambiguous", true),
		Description: "Ambiguous use of 'DISTINCT' in a 'SELECT' statement with 'GROUP BY'.",
		Severity:    lint.SeverityWarning,
		BadExample:  "SELECT DISTINCT a\nFROM foo\nGROUP BY a",
		GoodExample: "SELECT a\nFROM foo\nGROUP BY a",
	},
	{
		Code:        "L033",
		Name:        "ambiguous.union",
		Groups:      groups("ambiguous", true),
		Description: "'UNION [DISTINCT|ALL]' is preferred over just 'UNION'.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L037",
		Name:        "ambiguous.order_by",
		Groups:      groups("ambiguous", false),
		Description: "Ambiguous ordering directions for columns in order by clause.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L044",
		Name:        "ambiguous.column_count",
		Groups:      groups("ambiguous", false),
		Description: "Query produces an unknown number of result columns.",
		Severity:    lint.SeverityInfo,
	},
}
