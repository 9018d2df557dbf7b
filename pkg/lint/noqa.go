package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/lexer"
)

// NoQAAction is what a noqa directive does.
type NoQAAction int

// NoQA actions.
const (
	// NoQAIgnore silences violations on the directive's own line.
	NoQAIgnore NoQAAction = iota
	// NoQADisable silences violations from the directive's line onward.
	NoQADisable
	// NoQAEnable ends an earlier disable.
	NoQAEnable
)

func (a NoQAAction) String() string {
	switch a {
	case NoQAIgnore:
		return "ignore"
	case NoQADisable:
		return "disable"
	case NoQAEnable:
		return "enable"
	default:
		return "unknown"
	}
}

// MarshalText encodes the action by name.
func (a NoQAAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// NoQA is a parsed "-- noqa" directive. A nil Rules list means every rule.
type NoQA struct {
	Line   int        `json:"line" yaml:"line"`
	Action NoQAAction `json:"action" yaml:"action"`
	Rules  []string   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Applies reports whether the directive names the rule with code.
func (n NoQA) Applies(code string) bool {
	if n.Rules == nil {
		return true
	}
	rule := RuleInfo{Code: strings.ToUpper(code)}
	if known, ok := Get(code); ok {
		rule = known
	}
	return matchesAny(rule, n.Rules)
}

// ParseNoQA parses a comment as a noqa directive. It returns nil, nil for
// comments that are not directives.
//
//	-- noqa
//	-- noqa: L010,L014
//	-- noqa: disable=L010
//	-- noqa: enable=all
func ParseNoQA(comment string, line int) (*NoQA, error) {
	body := strings.TrimSpace(comment)
	switch {
	case strings.HasPrefix(body, "--"):
		body = body[2:]
	case strings.HasPrefix(body, "#"):
		body = body[1:]
	default:
		return nil, nil
	}
	body = strings.TrimSpace(body)
	if len(body) < 4 || !strings.EqualFold(body[:4], "noqa") {
		return nil, nil
	}
	rest := strings.TrimSpace(body[4:])
	if rest == "" {
		return &NoQA{Line: line, Action: NoQAIgnore}, nil
	}
	if rest[0] != ':' {
		// "-- noqaxyz" is an ordinary comment.
		return nil, nil
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return &NoQA{Line: line, Action: NoQAIgnore}, nil
	}

	n := &NoQA{Line: line, Action: NoQAIgnore}
	if action, list, ok := strings.Cut(rest, "="); ok {
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "disable":
			n.Action = NoQADisable
		case "enable":
			n.Action = NoQAEnable
		default:
			return nil, fmt.Errorf("line %d: unknown noqa action %q (expected disable or enable)", line, strings.TrimSpace(action))
		}
		rest = list
	}

	rules, err := parseNoQARules(rest)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	n.Rules = rules
	return n, nil
}

func parseNoQARules(list string) ([]string, error) {
	var rules []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, GroupAll) {
			return nil, nil
		}
		rules = append(rules, part)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("noqa directive names no rules")
	}
	return rules, nil
}

// ExtractNoQA finds every noqa directive in the line comments of sql.
func ExtractNoQA(sql string) ([]NoQA, error) {
	comments, err := lexer.Comments(sql)
	if err != nil {
		return nil, err
	}
	var out []NoQA
	for _, c := range comments {
		if !c.IsLineComment() {
			continue
		}
		n, err := ParseNoQA(c.Text, c.Span.Start.Line)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, nil
}

// Ignored reports whether a violation of code on line is silenced.
// Disable and enable directives apply from their own line onward; the
// latest one naming the rule decides.
func Ignored(noqas []NoQA, code string, line int) bool {
	ranges := make([]NoQA, 0, len(noqas))
	for _, n := range noqas {
		if n.Action == NoQAIgnore {
			if n.Line == line && n.Applies(code) {
				return true
			}
			continue
		}
		ranges = append(ranges, n)
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].Line < ranges[j].Line })

	disabled := false
	for _, n := range ranges {
		if n.Line > line {
			break
		}
		if n.Applies(code) {
			disabled = n.Action == NoQADisable
		}
	}
	return disabled
}
