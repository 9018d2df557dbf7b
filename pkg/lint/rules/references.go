package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(referenceRules)
}

var referenceRules = []lint.RuleInfo{
	{
		Code:        "L026",
		Name:        "references.from",
		Groups:      groups("references", true),
		Description: "References cannot reference objects not present in 'FROM' clause.",
		ConfigKeys:  []string{"force_enable"},
		Severity:    lint.SeverityError,
	},
	{
		Code:        "L027",
		Name:        "references.qualification",
		Groups:      groups("references", true),
		Description: "References should be qualified if select has more than one referenced table.",
		Severity:    lint.SeverityWarning,
		BadExample:  "SELECT a\nFROM foo\nJOIN bar USING (id)",
		GoodExample: "SELECT foo.a\nFROM foo\nJOIN bar USING (id)",
	},
	{
		Code:        "L028",
		Name:        "references.consistent",
		Groups:      groups("references", false),
		Description: "References should be consistent in statements with a single table.",
		ConfigKeys:  []string{"single_table_references", "force_enable"},
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L029",
		Name:        "references.keywords",
		Groups:      groups("references", false),
		Description: "Keywords should not be used as identifiers.",
		ConfigKeys:  []string{"unquoted_identifiers_policy"},
		Severity:    lint.SeverityWarning,
	},
}
