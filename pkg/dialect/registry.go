package dialect

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrDialectRequired is returned when the config leaves dialect unset.
var ErrDialectRequired = errors.New("dialect is required")

// registered holds every dialect keyed by lower-cased name. Dialect
// packages fill it from init, so lookups are case-insensitive like sqlfluff's.
var registered = struct {
	sync.RWMutex
	byName map[string]*Dialect
}{byName: map[string]*Dialect{}}

// Register adds d, replacing any dialect of the same name.
func Register(d *Dialect) {
	registered.Lock()
	registered.byName[strings.ToLower(d.Name)] = d
	registered.Unlock()
}

// Get looks a dialect up by name, ignoring case.
func Get(name string) (*Dialect, bool) {
	registered.RLock()
	defer registered.RUnlock()
	d, ok := registered.byName[strings.ToLower(name)]
	return d, ok
}

// List returns the registered dialect names in sorted order.
func List() []string {
	registered.RLock()
	defer registered.RUnlock()
	return slices.Sorted(maps.Keys(registered.byName))
}

// All returns the registered dialects ordered by name.
func All() []*Dialect {
	registered.RLock()
	defer registered.RUnlock()
	out := make([]*Dialect, 0, len(registered.byName))
	for _, name := range slices.Sorted(maps.Keys(registered.byName)) {
		out = append(out, registered.byName[name])
	}
	return out
}
