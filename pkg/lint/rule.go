package lint

import (
	"slices"
	"strings"
)

// Group names every rule can be selected by.
const (
	GroupAll  = "all"
	GroupCore = "core"
)

// RuleInfo describes a lint rule: its code, what it checks and which
// configuration keys it reads.
type RuleInfo struct {
	Code        string   `json:"code" yaml:"code"`               // e.g. "L010"
	Name        string   `json:"name" yaml:"name"`               // e.g. "capitalisation.keywords"
	Groups      []string `json:"groups" yaml:"groups"`           // always includes "all"
	Description string   `json:"description" yaml:"description"` // one line
	ConfigKeys  []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Severity    Severity `json:"severity" yaml:"severity"`

	// Documentation fields
	BadExample  string `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

// InGroup reports whether the rule belongs to group (case-insensitive).
func (r RuleInfo) InGroup(group string) bool {
	return slices.ContainsFunc(r.Groups, func(g string) bool {
		return strings.EqualFold(g, group)
	})
}

// Category returns the first group that is neither "all" nor "core".
func (r RuleInfo) Category() string {
	for _, g := range r.Groups {
		if g != GroupAll && g != GroupCore {
			return g
		}
	}
	return ""
}

// DocURL links to the rule's documentation.
func (r RuleInfo) DocURL() string {
	return BuildDocURL(r.Code)
}
