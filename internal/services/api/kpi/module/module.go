// Package module wires the kpi endpoints into the API
package module

import (
	"fmt"

	"maintkpi/internal/core/kpi"
	"maintkpi/internal/modkit"
	"maintkpi/internal/modkit/httpkit"
	"maintkpi/internal/modkit/repokit"
	kpihttp "maintkpi/internal/services/api/kpi/http"
	kpirepo "maintkpi/internal/services/api/kpi/repo"
	kpisvc "maintkpi/internal/services/api/kpi/service"
)

// Module is the kpi module
type Module struct {
	built  modkit.Built
	source string
	svc    kpisvc.Service
	ports  any
}

// New builds the module reading records from the backend named by source, "pg" or "ch"
func New(deps modkit.Deps, source string, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build("kpi", "/kpi", opts...)

	q, err := deps.Reader(source)
	if err != nil {
		return nil, err
	}
	binder := binderFor(source)
	engine := kpi.New(kpi.WithClock(deps.Now()))
	svc := kpisvc.New(repokit.MustBind(binder, q), engine, deps.Metrics)

	m := &Module{built: b, source: source, svc: svc}
	m.ports = b.Ports
	if m.ports == nil {
		m.ports = Ports{Service: svc}
	}
	return m, nil
}

// Builder adapts New to modkit.Builder for the source configured under CORE_API_KPI_SOURCE
func Builder(source string) modkit.Builder {
	return func(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
		m, err := New(deps, source, opts...)
		if err != nil {
			panic(fmt.Sprintf("kpi module: %v", err))
		}
		return m
	}
}

func binderFor(source string) repokit.Binder[kpirepo.Repo] {
	if source == modkit.SourceCH {
		return kpirepo.NewCH()
	}
	return kpirepo.NewPG()
}

// MountRoutes mounts the kpi endpoints under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sr httpkit.Router) { kpihttp.Register(sr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// Source returns the record backend in use
func (m *Module) Source() string { return m.source }
