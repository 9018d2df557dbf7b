package templater

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Templater registry
var (
	templatersMu sync.RWMutex
	templaters   = make(map[string]Templater)
)

// ErrUnknownTemplater is returned when the configured templater is not registered.
var ErrUnknownTemplater = errors.New("unknown templater")

// Register registers a templater in the global registry.
func Register(t Templater) {
	templatersMu.Lock()
	defer templatersMu.Unlock()
	templaters[strings.ToLower(t.Name())] = t
}

// Get returns a templater by name.
func Get(name string) (Templater, bool) {
	templatersMu.RLock()
	defer templatersMu.RUnlock()
	t, ok := templaters[strings.ToLower(name)]
	return t, ok
}

// List returns all registered templater names (sorted).
func List() []string {
	templatersMu.RLock()
	defer templatersMu.RUnlock()
	names := make([]string, 0, len(templaters))
	for name := range templaters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered templater, sorted by name.
func All() []Templater {
	names := List()
	out := make([]Templater, 0, len(names))
	for _, name := range names {
		t, _ := Get(name)
		out = append(out, t)
	}
	return out
}

// ForConfig returns the templater named by the `templater` key.
func ForConfig(cfg *config.FluffConfig) (Templater, error) {
	name := cfg.GetString("templater")
	t, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownTemplater, name, strings.Join(List(), ", "))
	}
	return t, nil
}

func init() {
	Register(Raw{})
	Register(Python{})
	Register(NewJinja(nil))
}
