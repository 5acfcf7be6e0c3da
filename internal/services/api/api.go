// Package api assembles the HTTP API from its modules
package api

import (
	"maintkpi/internal/modkit"
	"maintkpi/internal/modkit/httpkit"
	"maintkpi/internal/modkit/module"
	"maintkpi/internal/modkit/swaggerkit"
	"maintkpi/internal/platform/metrics"
	phttp "maintkpi/internal/platform/net/http"

	kpimod "maintkpi/internal/services/api/kpi/module"
	metamod "maintkpi/internal/services/api/meta/module"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceName is reported by the meta endpoints
const ServiceName = "maintkpi-api"

// Options are the API options
type Options struct {
	Deps   modkit.Deps
	Source string // pg or ch
	Stack  httpkit.StackOptions

	EnableSwagger  bool
	EnableProfiler bool
	// EnableMetrics serves Gatherer at /metrics; nil Gatherer means the default registry
	EnableMetrics bool
	Gatherer      prometheus.Gatherer
}

// Mount mounts the API onto r. It fails when the record source is not configured
func Mount(r phttp.Router, opt Options) error {
	kpi, err := kpimod.New(opt.Deps, opt.Source)
	if err != nil {
		return err
	}
	mods := []module.Module{
		metamod.New(opt.Deps, ServiceName, opt.Source),
		kpi,
	}
	if opt.Stack.Metrics == nil {
		opt.Stack.Metrics = opt.Deps.Metrics
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		swaggerkit.Mount(api, "/api/v1", opt.EnableSwagger)

		for _, m := range mods {
			// ports are registered under the module name for cross module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
			opt.Deps.Log.Debug().Str("module", m.Name()).Str("prefix", "/api/v1"+module.PrefixOf(m)).Msg("module mounted")
		}
	})

	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler(opt.Gatherer))
	}
	return nil
}
