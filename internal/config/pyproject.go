package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// parsePyproject extracts the [tool.sqlfluff] table of a pyproject.toml.
// Nested tables become sections; a missing table yields nil.
func parsePyproject(data []byte) (map[string]any, error) {
	var doc struct {
		Tool map[string]any `toml:"tool"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	table, ok := doc.Tool[RootSection].(map[string]any)
	if !ok {
		return nil, nil
	}

	out := normalizeTOML(table)
	// Top level scalars belong to the root section, as in a .sqlfluff file.
	core, _ := out[CoreSection].(map[string]any)
	for k, v := range out {
		if _, isSection := v.(map[string]any); isSection {
			continue
		}
		if core == nil {
			core = make(map[string]any)
		}
		core[k] = v
		delete(out, k)
	}
	if core != nil {
		out[CoreSection] = core
	}
	return out, nil
}

func normalizeTOML(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeTOMLValue(v)
	}
	return out
}

func normalizeTOMLValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeTOML(val)
	case int64:
		return int(val)
	case string:
		return Coerce(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeTOMLValue(item)
		}
		return out
	default:
		return val
	}
}
