package rules

import "github.com/leapstack-labs/gofluff/pkg/lint"

func init() {
	register(layoutRules)
}

var layoutRules = []lint.RuleInfo{
	{
		Code:        "L001",
		Name:        "layout.trailing_whitespace",
		Groups:      groups("layout", true),
		Description: "Unnecessary trailing whitespace.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L002",
		Name:        "layout.mixed_indent",
		Groups:      groups("layout", true),
		Description: "Mixed tabs and spaces in single whitespace.",
		ConfigKeys:  []string{"tab_space_size"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L003",
		Name:        "layout.indent",
		Groups:      groups("layout", true),
		Description: "Indentation not consistent with previous lines.",
		ConfigKeys:  []string{"tab_space_size", "indent_unit"},
		Severity:    lint.SeverityWarning,
		BadExample:  "SELECT\n    a,\n        b\nFROM foo",
		GoodExample: "SELECT\n    a,\n    b\nFROM foo",
	},
	{
		Code:        "L004",
		Name:        "layout.indent_type",
		Groups:      groups("layout", true),
		Description: "Incorrect indentation type.",
		ConfigKeys:  []string{"indent_unit", "tab_space_size"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L005",
		Name:        "layout.comma_spacing",
		Groups:      groups("layout", true),
		Description: "Commas should not have whitespace directly before them.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L006",
		Name:        "layout.operator_spacing",
		Groups:      groups("layout", true),
		Description: "Operators should be surrounded by a single whitespace.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L007",
		Name:        "layout.operators",
		Groups:      groups("layout", false),
		Description: "Operators should follow a standard for being before/after newlines.",
		ConfigKeys:  []string{"operator_new_lines"},
		Severity:    lint.SeverityInfo,
		BadExample:  "SELECT\n    a +\n    b\nFROM foo",
		GoodExample: "SELECT\n    a\n    + b\nFROM foo",
	},
	{
		Code:        "L008",
		Name:        "layout.comma_whitespace",
		Groups:      groups("layout", true),
		Description: "Commas should be followed by a single whitespace unless followed by a comment.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L009",
		Name:        "layout.end_of_file",
		Groups:      groups("layout", true),
		Description: "Files must end with a single trailing newline.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L016",
		Name:        "layout.long_lines",
		Groups:      groups("layout", true),
		Description: "Line is too long.",
		ConfigKeys:  []string{"max_line_length", "tab_space_size", "indent_unit", "ignore_comment_lines"},
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L017",
		Name:        "layout.functions",
		Groups:      groups("layout", true),
		Description: "Function name not immediately followed by parenthesis.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L018",
		Name:        "layout.cte_bracket",
		Groups:      groups("layout", true),
		Description: "WITH clause closing bracket should be on a new line.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L019",
		Name:        "layout.commas",
		Groups:      groups("layout", false),
		Description: "Leading/Trailing comma enforcement.",
		ConfigKeys:  []string{"comma_style"},
		Severity:    lint.SeverityInfo,
		BadExample:  "SELECT\n    a\n    , b\nFROM foo",
		GoodExample: "SELECT\n    a,\n    b\nFROM foo",
	},
	{
		Code:        "L022",
		Name:        "layout.cte_newline",
		Groups:      groups("layout", false),
		Description: "Blank line expected but not found after CTE closing bracket.",
		ConfigKeys:  []string{"comma_style"},
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L023",
		Name:        "layout.cte_as_spacing",
		Groups:      groups("layout", true),
		Description: "Single whitespace expected after 'AS' in 'WITH' clause.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L024",
		Name:        "layout.using_spacing",
		Groups:      groups("layout", true),
		Description: "Single whitespace expected after 'USING' in 'JOIN' clause.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L036",
		Name:        "layout.select_targets",
		Groups:      groups("layout", false),
		Description: "Select targets should be on a new line unless there is only one select target.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L039",
		Name:        "layout.spacing",
		Groups:      groups("layout", false),
		Description: "Unnecessary whitespace found.",
		Severity:    lint.SeverityInfo,
	},
	{
		Code:        "L041",
		Name:        "layout.select_modifiers",
		Groups:      groups("layout", true),
		Description: "SELECT modifiers (e.g. DISTINCT) must be on the same line as SELECT.",
		Severity:    lint.SeverityWarning,
	},
	{
		Code:        "L048",
		Name:        "layout.quoted_literal_spacing",
		Groups:      groups("layout", false),
		Description: "Quoted literals should be surrounded by a single whitespace.",
		Severity:    lint.SeverityInfo,
	},
}
