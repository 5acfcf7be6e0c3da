package module

import (
	"maps"
	"slices"
	"sync"
)

// process wide port registry filled while mounting in main
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set of the module called name, replacing any earlier one
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs returns the port set registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists registered modules, sorted
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(reg))
}

// Reset empties the registry, for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
