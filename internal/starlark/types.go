// Package starlark evaluates template expressions with go.starlark.net and
// converts values between Go config data and Starlark.
package starlark

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
)

// FromConfig converts a config value to Starlark. Config values are the
// scalars produced by value coercion (string, int, float64, bool, nil) plus
// string lists and nested sections; values that already are Starlark pass
// through.
func FromConfig(v any) (starlark.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlark.None, nil
	case starlark.Value:
		return val, nil
	case string:
		return starlark.String(val), nil
	case bool:
		return starlark.Bool(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case []string:
		items := make([]starlark.Value, len(val))
		for i, s := range val {
			items[i] = starlark.String(s)
		}
		return starlark.NewList(items), nil
	case []any:
		items := make([]starlark.Value, len(val))
		for i := range val {
			item, err := FromConfig(val[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = item
		}
		return starlark.NewList(items), nil
	case map[string]string:
		return section(val, func(s string) (starlark.Value, error) { return starlark.String(s), nil })
	case map[string]any:
		return section(val, FromConfig)
	}
	return nil, fmt.Errorf("cannot use %T in a template context", v)
}

// section builds a dict with keys in sorted order so that printing it is
// stable.
func section[V any](m map[string]V, conv func(V) (starlark.Value, error)) (*starlark.Dict, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dict := starlark.NewDict(len(m))
	for _, k := range keys {
		v, err := conv(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		if err := dict.SetKey(starlark.String(k), v); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// StringDict converts template context variables into Starlark globals.
func StringDict(vars map[string]any) (starlark.StringDict, error) {
	out := make(starlark.StringDict, len(vars))
	for name, v := range vars {
		sv, err := FromConfig(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		out[name] = sv
	}
	return out, nil
}

// ToText renders a value the way a template prints it. Strings print
// unquoted and a nil value prints nothing; anything else, None included,
// uses its Starlark repr.
func ToText(v starlark.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case starlark.String:
		return string(val)
	}
	return v.String()
}
