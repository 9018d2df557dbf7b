package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce converts a raw config string into its typed value.
//
//	"42"    -> int
//	"1.5"   -> float64
//	"True"  -> bool (case-insensitive, also "False")
//	"None"  -> nil
//
// Anything else is returned as the trimmed string.
func Coerce(raw string) any {
	s := strings.TrimSpace(raw)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	case "none":
		return nil
	}
	return s
}

// SplitCommaList normalises list-like values. Comma separated strings are
// split and trimmed; nil yields an empty list.
func SplitCommaList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			out = append(out, SplitCommaList(s)...)
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, SplitCommaList(fmt.Sprint(item))...)
		}
		return out
	default:
		return SplitCommaList(fmt.Sprint(val))
	}
}

// FormatValue renders a typed value the way it would be written in a
// cfg file.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
