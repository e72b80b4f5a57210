package module

import (
	"slices"
	"sync"
)

// process wide port registry, filled by the api composition root while mounting
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set of the named module, a later call replaces it
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs fetches the port set for name and asserts it to T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists registered modules in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(reg)
}
