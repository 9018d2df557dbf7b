package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(structureRules)
}

var structureRules = []lint.RuleInfo{
	{
		Code:        "L015",
		Name:        "structure.distinct",
		Groups:      groups("structure", true),
		Description: "DISTINCT used with parentheses.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L032",
		Name:        "structure.using",
		Groups:      groups("structure", false),
		Description: "Prefer specifying join keys instead of using 'USING'.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L034",
		Name:        "structure.column_order",
		Groups:      groups("structure", false),
		Description: "Select wildcards then simple targets before calculations and aggregates.",
		Severity:    lint.SeverityHint,
	},
	{
		Code:        "L035",
		Name:        "structure.else_null",
		Groups:      groups("structure", true),
		Description: "Do not specify 'else null' in a case when statement (redundant).",
		Severity:    lint.SeverityInfo,
		BadExample:  "SELECT CASE WHEN a THEN 1 ELSE NULL END\nFROM foo",
		GoodExample: "SELECT CASE WHEN a THEN 1 END\nFROM foo",
	},
	{
		Code:        "L042",
		Name:        "structure.subquery",
		Groups:      groups("structure", false),
		Description: "Join/From clauses should not contain subqueries. Use CTEs instead.",
		ConfigKeys:  []string{"forbid_subquery_in"},
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L043",
		Name:        "structure.simple_case",
		Groups:      groups("structure", true),
		Description: "Unnecessary 'CASE' statement.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L045",
		Name:        "structure.unused_cte",
		Groups:      groups("structure", true),
		Description: "Query defines a CTE (common-table expression) but does not use it.",
		Severity:    lint.SeverityWarning,
	},
}
