package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(aliasingRules)
}

var aliasingRules = []lint.RuleInfo{
	{
		Code:        "L011",
		Name:        "aliasing.table",
		Groups:      groups("aliasing", false),
		Description: "Implicit/explicit aliasing of table.",
		ConfigKeys:  []string{"aliasing"},
		Severity:    lint.SeverityWarning,
		BadExample:  "SELECT a FROM foo f",
		GoodExample: "SELECT a FROM foo AS f",
	},
	{
		Code:        "L012",
		Name:        "aliasing.column",
		Groups:      groups("aliasing", false),
		Description: "Implicit/explicit aliasing of columns.",
		ConfigKeys:  []string{"aliasing"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L013",
		Name:        "aliasing.expression",
		Groups:      groups("aliasing", true),
		Description: "Column expression without alias. Use explicit `AS` clause.",
		ConfigKeys:  []string{"allow_scalar"},
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L020",
		Name:        "aliasing.unique.table",
		Groups:      groups("aliasing", true),
		Description: "Table aliases should be unique within each clause.",
		Severity:    lint.SeverityError,
	},
	{
		Code:        "L025",
		Name:        "aliasing.unused",
		Groups:      groups("aliasing", true),
		Description: "Tables should not be aliased if that alias is not used.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L031",
		Name:        "aliasing.forbid",
		Groups:      groups("aliasing", false),
		Description: "Avoid aliases in from clauses and join conditions.",
		Severity:    lint.SeverityInfo,
	},
}
