package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(capitalisationRules)
}

var capitalisationRules = []lint.RuleInfo{
	{
		Code:        "L010",
		Name:        "capitalisation.keywords",
		Groups:      groups("capitalisation", true),
		Description: "Inconsistent capitalisation of keywords.",
		ConfigKeys:  []string{"capitalisation_policy", "ignore_words"},
		Severity:    lint.SeverityWarning,
		BadExample:  "SELECT a\nfrom foo",
		GoodExample: "SELECT a\nFROM foo",
	},
	{
		Code:        "L014",
		Name:        "capitalisation.identifiers",
		Groups:      groups("capitalisation", true),
		Description: "Inconsistent capitalisation of unquoted identifiers.",
		ConfigKeys:  []string{"extended_capitalisation_policy", "unquoted_identifiers_policy", "ignore_words"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L030",
		Name:        "capitalisation.functions",
		Groups:      groups("capitalisation", true),
		Description: "Inconsistent capitalisation of function names.",
		ConfigKeys:  []string{"capitalisation_policy", "ignore_words"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L040",
		Name:        "capitalisation.literals",
		Groups:      groups("capitalisation", true),
		Description: "Inconsistent capitalisation of boolean/null literal.",
		ConfigKeys:  []string{"capitalisation_policy", "ignore_words"},
		Severity:    lint.SeverityWarning,
	},
}
