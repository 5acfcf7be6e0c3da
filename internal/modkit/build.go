package modkit

import (
	"net/http"

	phttp "maintkpi/internal/platform/net/http"
	pstrings "maintkpi/internal/platform/strings"
)

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts over the module's defaults
func Build(defName, defPrefix string, opts ...Option) Built {
	c := buildCfg{name: defName, prefix: defPrefix}
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   pstrings.MustPrefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount mounts routes under the prefix with the module middleware applied
func (b Built) Mount(r phttp.Router, routes func(phttp.Router)) {
	r.Route(b.Prefix, func(sr phttp.Router) {
		if len(b.Mw) > 0 {
			sr.Use(b.Mw...)
		}
		routes(sr)
		b.Register(sr)
	})
}
