package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(jinjaRules)
}

var jinjaRules = []lint.RuleInfo{
	{
		Code:        "L046",
		Name:        "jinja.padding",
		Groups:      groups("jinja", true),
		Description: "Jinja tags should have a single whitespace on either side.",
		Severity:    lint.SeverityInfo,
		BadExample:  "SELECT {{a}}\nFROM foo",
		GoodExample: "SELECT {{ a }}\nFROM foo",
	},
}
