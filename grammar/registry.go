package grammar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// The driver registry is process-wide and read by every builder
// construction. Registration is expected at startup but is safe at any
// time; resolution hands the grammar out by value, so a builder never
// re-reads the registry mid-build.
var (
	registryMu sync.RWMutex
	registry   = map[string]func() Grammar{
		"mysql":    func() Grammar { return MySQL{} },
		"postgres": func() Grammar { return Postgres{} },
	}
)

// Register makes a grammar available under the given driver name. The last
// registration for a name wins, so built-ins can be replaced.
func Register(name string, factory func() Grammar) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Resolve returns a grammar for the driver name. An unregistered name fails
// with *UnsupportedDialectError.
func Resolve(name string) (Grammar, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	if !ok {
		known := make([]string, 0, len(registry))
		for k := range registry {
			known = append(known, k)
		}
		registryMu.RUnlock()
		sort.Strings(known)
		return nil, &UnsupportedDialectError{Driver: name, Known: known}
	}
	registryMu.RUnlock()
	return factory(), nil
}

// Drivers returns the currently registered driver names, sorted.
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UnsupportedDialectError reports resolution of an unregistered driver name.
// It enumerates the known drivers so a misconfigured name is diagnosable
// from the message alone.
type UnsupportedDialectError struct {
	Driver string
	Known  []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect %q (registered: %s)",
		e.Driver, strings.Join(e.Known, ", "))
}
