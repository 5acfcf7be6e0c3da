// Package module mounts the meta endpoints
package module

import (
	"time"

	"maintkpi/internal/modkit"
	"maintkpi/internal/modkit/httpkit"
	"maintkpi/internal/modkit/module"
	metahttp "maintkpi/internal/services/api/meta/http"
)

// Module is the meta module
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New builds the meta module. serviceName and source are reported as is
func New(deps modkit.Deps, serviceName, source string, opts ...modkit.Option) *Module {
	b := modkit.Build("meta", "/meta", opts...)

	md := metahttp.Deps{
		ServiceName: serviceName,
		StartedAt:   deps.Now().Now(),
		Source:      source,
		Clock:       deps.Now(),
		Modules:     module.Names,
	}
	// typed nils would make a missing store look configured
	if deps.PG != nil {
		if p, ok := deps.PG.(metahttp.Pinger); ok {
			md.PG = p
		}
	}
	if deps.CH != nil {
		md.CH = deps.CH
	}
	return &Module{built: b, deps: md}
}

// MountRoutes mounts the meta endpoints under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sr httpkit.Router) { metahttp.Register(sr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix is where the meta endpoints mount
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports is empty for meta
func (m *Module) Ports() any { return nil }

// StartedAt is when the module was built
func (m *Module) StartedAt() time.Time { return m.deps.StartedAt }
