package config

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/lexer"
)

const inlinePrefix = "sqlfluff:"

// ProcessInlineConfig applies a single "-- sqlfluff:path:value" directive.
// Lines without the directive prefix are ignored. Unlike the other
// methods it modifies c in place; call it on a copy.
func (c *FluffConfig) ProcessInlineConfig(line string) error {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "--") {
		return nil
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "--"))
	if !strings.HasPrefix(line, inlinePrefix) {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(line, inlinePrefix), ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || parts[0] == "" {
		return fmt.Errorf("invalid inline config %q: expected sqlfluff:key:value", line)
	}

	path := parts[:len(parts)-1]
	value := Coerce(parts[len(parts)-1])
	if len(path) == 1 && path[0] == "dialect" {
		if err := checkDialect(value); err != nil {
			return err
		}
	}
	if err := c.set(value, path...); err != nil {
		return fmt.Errorf("inline config %q: %w", line, err)
	}
	c.sources = append(c.sources, Source{Kind: SourceInline, Path: strings.Join(path, ":"), Keys: 1})
	return nil
}

// ForFile returns a copy of c with every inline directive of sql applied.
func (c *FluffConfig) ForFile(sql string) (*FluffConfig, error) {
	lines, err := directiveLines(sql)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return c, nil
	}
	out := c.Copy()
	for _, line := range lines {
		if err := out.ProcessInlineConfig(line); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// directiveLines returns the line comments of sql that carry a directive.
// Files the lexer rejects are scanned line by line instead.
func directiveLines(sql string) ([]string, error) {
	var out []string
	comments, err := lexer.Comments(sql)
	var lexErr *lexer.LexError
	switch {
	case errors.As(err, &lexErr):
		sc := bufio.NewScanner(strings.NewReader(sql))
		for sc.Scan() {
			if isDirective(sc.Text()) {
				out = append(out, strings.TrimSpace(sc.Text()))
			}
		}
		return out, sc.Err()
	case err != nil:
		return nil, err
	}
	for _, cm := range comments {
		if cm.IsLineComment() && isDirective(cm.Text) {
			out = append(out, cm.Text)
		}
	}
	return out, nil
}

func isDirective(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "--") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(line[2:]), inlinePrefix)
}
