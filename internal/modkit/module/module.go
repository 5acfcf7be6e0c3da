// Package module is the contract every API module satisfies.
// It sits apart from modkit so a module's ports type can import it without a cycle
package module

import (
	phttp "maintkpi/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Prefixed is implemented by modules mounted under a sub path of the api root
type Prefixed interface {
	Prefix() string
}

// PrefixOf reports where m mounts, "/" when it does not say
func PrefixOf(m Module) string {
	if p, ok := m.(Prefixed); ok && p.Prefix() != "" {
		return p.Prefix()
	}
	return "/"
}
