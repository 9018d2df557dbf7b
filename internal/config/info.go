package config

import "sort"

// OptionInfo documents a standard rule option.
type OptionInfo struct {
	Definition    string
	ValidOptions  []any
	ValidatesType string // "int", "bool" or "" for free text
}

var capitalisationPolicies = []any{"consistent", "upper", "lower", "capitalise"}

// ConfigInfo describes the standard rule options shared across rules.
var ConfigInfo = map[string]OptionInfo{
	"force_enable": {
		Definition:    "Run this rule even for dialects where this rule is disabled by default.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"tab_space_size": {
		Definition:    "The number of spaces to consider equal to one tab. Used in the fixing step of this rule.",
		ValidatesType: "int",
	},
	"indent_unit": {
		Definition:   "Whether to use tabs or spaces to add new indents.",
		ValidOptions: []any{"space", "tab"},
	},
	"max_line_length": {
		Definition:    "The maximum length of a line to allow without raising a violation.",
		ValidatesType: "int",
	},
	"ignore_comment_lines": {
		Definition:    "Should lines that contain only whitespace and comments be ignored when linting line lengths.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"ignore_comment_clauses": {
		Definition:    "Should comment clauses (e.g. column comments) be ignored when linting line lengths.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"comma_style": {
		Definition:   "The comma style to enforce.",
		ValidOptions: []any{"leading", "trailing"},
	},
	"allow_scalar": {
		Definition:    "Whether or not to allow a single element in the select clause to be without an alias.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"single_table_references": {
		Definition:   "The expectation for references in single-table select.",
		ValidOptions: []any{"consistent", "qualified", "unqualified"},
	},
	"unquoted_identifiers_policy": {
		Definition:   "Types of unquoted identifiers to flag violations for.",
		ValidOptions: []any{"all", "aliases", "column_aliases"},
	},
	"capitalisation_policy": {
		Definition:   "The capitalisation policy to enforce.",
		ValidOptions: capitalisationPolicies,
	},
	"extended_capitalisation_policy": {
		Definition:   "The capitalisation policy to enforce, extended with PascalCase.",
		ValidOptions: append(append([]any{}, capitalisationPolicies...), "pascal"),
	},
	"select_clause_trailing_comma": {
		Definition:   "Should trailing commas within select clauses be required or forbidden.",
		ValidOptions: []any{"forbid", "require"},
	},
	"ignore_words": {
		Definition: "Comma separated list of words to ignore from rule.",
	},
	"forbid_subquery_in": {
		Definition:   "Which clauses should be linted for subqueries.",
		ValidOptions: []any{"join", "from", "both"},
	},
	"prefer_count_1": {
		Definition:    "Should count(1) be preferred over count(*) and count(0).",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"prefer_count_0": {
		Definition:    "Should count(0) be preferred over count(*) and count(1).",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"operator_new_lines": {
		Definition:   "Should operator be placed before or after newlines.",
		ValidOptions: []any{"before", "after"},
	},
	"aliasing": {
		Definition:   "Should alias have an explicit AS or is implicit aliasing required.",
		ValidOptions: []any{"implicit", "explicit"},
	},
	"multiline_newline": {
		Definition:    "Should semi-colons be placed on a new line after multi-line statements.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"require_final_semicolon": {
		Definition:    "Should final semi-colons be required.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"prefer_quoted_identifiers": {
		Definition:    "If true, requires every identifier to be quoted.",
		ValidOptions:  []any{true, false},
		ValidatesType: "bool",
	},
	"blocked_words": {
		Definition: "Optional, comma-separated list of blocked words which should not be used in statements.",
	},
	"preferred_type_casting_style": {
		Definition:   "The expectation for using sql type casting.",
		ValidOptions: []any{"consistent", "shorthand", "convert", "cast"},
	},
}

// OptionNames returns the documented option names, sorted.
func OptionNames() []string {
	names := make([]string, 0, len(ConfigInfo))
	for name := range ConfigInfo {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
