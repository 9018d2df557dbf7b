package config

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// RootSection is the section prefix every linter setting lives under.
const RootSection = "sqlfluff"

// CoreSection is the key the bare [sqlfluff] section is stored under.
const CoreSection = "core"

// ParseError reports a malformed configuration file.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// CfgParser implements koanf.Parser for INI style config files
// (.sqlfluff, setup.cfg, tox.ini, pep8.ini).
//
// Only sections named "sqlfluff" or "sqlfluff:..." are kept. The bare
// [sqlfluff] section maps to "core" and [sqlfluff:a:b] maps to a.b, so
// the returned map nests as {"core": {...}, "rules": {"L010": {...}}}.
type CfgParser struct{}

// Parser returns a cfg parser.
func Parser() *CfgParser {
	return &CfgParser{}
}

// Unmarshal parses cfg bytes into a nested map.
func (p *CfgParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	return ParseCfg(b)
}

// Marshal renders a nested map back into cfg text.
func (p *CfgParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return MarshalCfg(o), nil
}

type cfgEntry struct {
	section []string // nil when the section is not a linter section
	key     string
	value   string
	line    int
}

// ParseCfg parses cfg text. See CfgParser for the resulting layout.
func ParseCfg(data []byte) (map[string]interface{}, error) {
	var (
		entries []*cfgEntry
		section []string
		inSect  bool
		current *cfgEntry
		blanks  int
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		trimmed := strings.TrimSpace(raw)

		// Inside a value, comment lines are dropped and blank lines are held
		// until an indented line shows the value goes on.
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			if current != nil && trimmed == "" {
				blanks++
			}
			continue
		}
		if current != nil && (raw[0] == ' ' || raw[0] == '\t') {
			current.value += strings.Repeat("\n", blanks+1) + trimmed
			blanks = 0
			continue
		}
		current, blanks = nil, 0

		if trimmed[0] == '[' {
			end := strings.LastIndex(trimmed, "]")
			if end < 0 {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unterminated section header %q", trimmed)}
			}
			name := strings.TrimSpace(trimmed[1:end])
			if name == "" {
				return nil, &ParseError{Line: lineNo, Msg: "empty section name"}
			}
			inSect = true
			section = sectionPath(name)
			continue
		}

		if !inSect {
			return nil, &ParseError{Line: lineNo, Msg: "key outside of any section"}
		}

		idx := strings.IndexAny(trimmed, "=:")
		if idx <= 0 {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected 'key = value', got %q", trimmed)}
		}
		current = &cfgEntry{
			section: section,
			key:     strings.ToLower(strings.TrimSpace(trimmed[:idx])),
			value:   strings.TrimSpace(trimmed[idx+1:]),
			line:    lineNo,
		}
		entries = append(entries, current)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	out := make(map[string]interface{})
	for _, e := range entries {
		if e.section == nil {
			continue
		}
		m, err := ensureSection(out, e.section)
		if err != nil {
			return nil, &ParseError{Line: e.line, Msg: err.Error()}
		}
		m[e.key] = Coerce(e.value)
	}
	return out, nil
}

// sectionPath maps a cfg section name to its nested key path.
// Non-linter sections return nil.
func sectionPath(name string) []string {
	parts := strings.Split(name, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] != RootSection {
		return nil
	}
	if len(parts) == 1 {
		return []string{CoreSection}
	}
	return parts[1:]
}

// ensureSection walks (creating as needed) the nested map at path.
func ensureSection(root map[string]interface{}, path []string) (map[string]interface{}, error) {
	m := root
	for _, p := range path {
		next, ok := m[p]
		if !ok || next == nil {
			child := make(map[string]interface{})
			m[p] = child
			m = child
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("section %q conflicts with a value of the same name", strings.Join(path, ":"))
		}
		m = child
	}
	return m, nil
}

// MarshalCfg renders a nested config map as cfg text. Sections are written
// in sorted order with the core section first.
func MarshalCfg(o map[string]interface{}) []byte {
	var buf bytes.Buffer
	writeCfgSection(&buf, nil, o)
	return bytes.TrimLeft(buf.Bytes(), "\n")
}

func writeCfgSection(buf *bytes.Buffer, path []string, m map[string]interface{}) {
	var scalars, sections []string
	for k, v := range m {
		if _, ok := v.(map[string]interface{}); ok {
			sections = append(sections, k)
		} else {
			scalars = append(scalars, k)
		}
	}
	sort.Strings(scalars)
	sort.Slice(sections, func(i, j int) bool {
		if (sections[i] == CoreSection) != (sections[j] == CoreSection) {
			return sections[i] == CoreSection
		}
		return sections[i] < sections[j]
	})

	if len(scalars) > 0 && path != nil {
		header := RootSection
		if !(len(path) == 1 && path[0] == CoreSection) {
			header += ":" + strings.Join(path, ":")
		}
		fmt.Fprintf(buf, "\n[%s]\n", header)
		for _, k := range scalars {
			fmt.Fprintf(buf, "%s = %s\n", k, FormatValue(m[k]))
		}
	}
	for _, k := range sections {
		child := append(append([]string{}, path...), k)
		writeCfgSection(buf, child, m[k].(map[string]interface{}))
	}
}
