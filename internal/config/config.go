// Package config loads, layers and queries the linter configuration.
//
// Configuration is read from the embedded defaults, the user's config
// directory, every project config file between the working directory and
// the linted path, the environment, CLI overrides and finally inline
// "-- sqlfluff:" directives inside a SQL file. Later layers override
// earlier ones key by key.
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
)

// SourceKind identifies where a configuration layer came from.
type SourceKind string

// Source kinds, in load order.
const (
	SourceDefault  SourceKind = "default"
	SourceUser     SourceKind = "user"
	SourceProject  SourceKind = "project"
	SourceFile     SourceKind = "file"
	SourceEnv      SourceKind = "env"
	SourceOverride SourceKind = "override"
	SourceInline   SourceKind = "inline"
)

// Source records one loaded configuration layer.
type Source struct {
	Kind SourceKind `json:"kind"`
	Path string     `json:"path,omitempty"`
	Keys int        `json:"keys"`
}

// Entry is a single flattened configuration value.
type Entry struct {
	Depth int    `json:"-"`
	Path  string `json:"path"`
	Key   string `json:"key"`
	Value any    `json:"value"`
	// Section is true for entries that only introduce a nested section.
	Section bool `json:"-"`
}

// UnknownDialectError is returned when a dialect name is not registered.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// FluffConfig is a layered configuration. Methods that change values
// return a modified copy; the receiver is left untouched.
type FluffConfig struct {
	k       *koanf.Koanf
	sources []Source
}

func newFluffConfig() *FluffConfig {
	return &FluffConfig{k: koanf.New(".")}
}

// New builds a config from the defaults with values layered on top.
func New(values map[string]any) (*FluffConfig, error) {
	c := Defaults().Copy()
	if err := c.merge(SourceOverride, "", values); err != nil {
		return nil, err
	}
	return c, nil
}

// merge layers values on top of the current configuration.
func (c *FluffConfig) merge(kind SourceKind, path string, values map[string]any) error {
	if err := c.k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("merging %s config %s: %w", kind, path, err)
	}
	c.sources = append(c.sources, Source{Kind: kind, Path: path, Keys: countLeaves(values)})
	return nil
}

// Copy returns a deep copy of the configuration.
func (c *FluffConfig) Copy() *FluffConfig {
	return &FluffConfig{
		k:       c.k.Copy(),
		sources: append([]Source(nil), c.sources...),
	}
}

// Sources returns the layers this configuration was built from, in order.
func (c *FluffConfig) Sources() []Source {
	return append([]Source(nil), c.sources...)
}

// Raw returns the nested configuration map.
func (c *FluffConfig) Raw() map[string]any {
	return c.k.Raw()
}

func keyPath(key string, section []string) string {
	if len(section) == 0 {
		section = []string{CoreSection}
	}
	return strings.Join(append(append([]string{}, section...), key), ".")
}

// Get returns the value of key in section (default "core").
func (c *FluffConfig) Get(key string, section ...string) any {
	return c.k.Get(keyPath(key, section))
}

// Exists reports whether key is set in section (default "core"), even to None.
func (c *FluffConfig) Exists(key string, section ...string) bool {
	return c.k.Exists(keyPath(key, section))
}

// GetString returns key as a string; None yields "".
func (c *FluffConfig) GetString(key string, section ...string) string {
	v := c.Get(key, section...)
	if v == nil {
		return ""
	}
	return FormatValue(v)
}

// GetInt returns key as an int, or 0 when unset or not numeric.
func (c *FluffConfig) GetInt(key string, section ...string) int {
	switch v := c.Get(key, section...).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	default:
		return 0
	}
}

// GetBool returns key as a bool.
func (c *FluffConfig) GetBool(key string, section ...string) bool {
	switch v := c.Get(key, section...).(type) {
	case bool:
		return v
	case string:
		b, _ := Coerce(v).(bool)
		return b
	case int:
		return v != 0
	default:
		return false
	}
}

// GetStringSlice returns key as a list, splitting comma separated strings.
func (c *FluffConfig) GetStringSlice(key string, section ...string) []string {
	return SplitCommaList(c.Get(key, section...))
}

// GetSection returns a copy of the nested section, or nil if it is missing.
func (c *FluffConfig) GetSection(section ...string) map[string]any {
	if len(section) == 0 {
		return c.k.Raw()
	}
	m, ok := c.k.Get(strings.Join(section, ".")).(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// Set returns a copy with the value at path replaced.
func (c *FluffConfig) Set(value any, path ...string) (*FluffConfig, error) {
	out := c.Copy()
	if err := out.set(value, path...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FluffConfig) set(value any, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty config path")
	}
	if len(path) == 1 {
		path = []string{CoreSection, path[0]}
	}
	return c.k.Set(strings.Join(path, "."), value)
}

// WithOverrides returns a copy with CLI style overrides applied. Keys
// without a dot address the core section; dotted keys are full paths
// such as "rules.L010.capitalisation_policy".
func (c *FluffConfig) WithOverrides(overrides map[string]any) (*FluffConfig, error) {
	if len(overrides) == 0 {
		return c, nil
	}
	nested := make(map[string]any)
	for key, val := range overrides {
		path := key
		if !strings.Contains(key, ".") {
			path = CoreSection + "." + key
		}
		if s, ok := val.(string); ok {
			val = Coerce(s)
		}
		if err := setNested(nested, strings.Split(path, "."), val); err != nil {
			return nil, err
		}
	}
	if name, ok := getNested(nested, CoreSection, "dialect"); ok {
		if err := checkDialect(name); err != nil {
			return nil, err
		}
	}

	out := c.Copy()
	if err := out.merge(SourceOverride, "", nested); err != nil {
		return nil, err
	}
	return out, nil
}

// Dialect returns the configured dialect. An unset dialect is an error.
func (c *FluffConfig) Dialect() (*dialect.Dialect, error) {
	name := c.GetString("dialect")
	if name == "" {
		return nil, dialect.ErrDialectRequired
	}
	d, ok := dialect.Get(name)
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: dialect.List()}
	}
	return d, nil
}

func checkDialect(v any) error {
	if v == nil {
		return nil
	}
	name := FormatValue(v)
	if _, ok := dialect.Get(name); !ok {
		return &UnknownDialectError{Name: name, Available: dialect.List()}
	}
	return nil
}

// Iter flattens the configuration for display. Within each section plain
// values come first, then nested sections, both sorted by key.
func (c *FluffConfig) Iter() []Entry {
	var out []Entry
	iterMap(c.k.Raw(), nil, &out)
	return out
}

func iterMap(m map[string]any, path []string, out *[]Entry) {
	var scalars, sections []string
	for k, v := range m {
		if _, ok := v.(map[string]any); ok {
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

	for _, k := range scalars {
		*out = append(*out, Entry{
			Depth: len(path),
			Path:  strings.Join(append(append([]string{}, path...), k), "."),
			Key:   k,
			Value: m[k],
		})
	}
	for _, k := range sections {
		child := append(append([]string{}, path...), k)
		*out = append(*out, Entry{Depth: len(path), Path: strings.Join(child, "."), Key: k, Section: true})
		iterMap(m[k].(map[string]any), child, out)
	}
}

// Diff returns the values of c that are missing from or different in base.
func (c *FluffConfig) Diff(base *FluffConfig) []Entry {
	mine := c.k.All()
	theirs := base.k.All()

	keys := make([]string, 0, len(mine))
	for k, v := range mine {
		if other, ok := theirs[k]; ok && reflect.DeepEqual(v, other) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		parts := strings.Split(k, ".")
		out = append(out, Entry{Depth: len(parts) - 1, Path: k, Key: parts[len(parts)-1], Value: mine[k]})
	}
	return out
}

func countLeaves(m map[string]any) int {
	n := 0
	for _, v := range m {
		if child, ok := v.(map[string]any); ok {
			n += countLeaves(child)
		} else {
			n++
		}
	}
	return n
}

func setNested(m map[string]any, path []string, val any) error {
	for i, p := range path[:len(path)-1] {
		next, ok := m[p]
		if !ok || next == nil {
			child := make(map[string]any)
			m[p] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %s: %s is a value, not a section",
				strings.Join(path, ":"), strings.Join(path[:i+1], ":"))
		}
		m = child
	}
	m[path[len(path)-1]] = val
	return nil
}

func getNested(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, p := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
