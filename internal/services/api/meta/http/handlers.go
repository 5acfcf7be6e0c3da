// Package http serves the meta endpoints: liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"maintkpi/internal/core/version"
	"maintkpi/internal/modkit/httpkit"
	ptime "maintkpi/internal/platform/time"
)

// Pinger is satisfied by the store backends
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. A nil backend is reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Source      string
	PG          Pinger
	CH          Pinger
	Clock       ptime.Clock
	Modules     func() []string
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System
	}
	if d.Modules == nil {
		d.Modules = func() []string { return nil }
	}
	h := &handlers{deps: d}

	httpkit.GetJSON(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.GetJSON(r, "/version", h.version)
	httpkit.GetJSON(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"maintkpi-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck is one dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Source string       `json:"source" example:"pg"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// ServiceResponse describes the running service
type ServiceResponse struct {
	Name     string   `json:"name"     example:"maintkpi-api"`
	Instance string   `json:"instance" example:"0b7f6c1e-8f0a-4a53-9d1c-2f4f3f8a9e10"`
	Source   string   `json:"source"   example:"pg"`
	Modules  []string `json:"modules"`
	Started  string   `json:"started"  example:"2026-10-01T13:00:00Z"`
	Uptime   int64    `json:"uptime"   example:"300"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness check against the configured backends
// @Description 503 when the backend serving records fails its ping
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "not ready"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, p Pinger) ReadyCheck {
		if p == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}
	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}

	res := ReadyResponse{Status: "ok", Source: h.deps.Source, Checks: checks, Now: h.deps.Clock.Now().UTC().Format(time.RFC3339)}
	status := http.StatusOK
	for _, c := range checks {
		switch {
		case c.Status == "ok":
		case c.Name == h.deps.Source:
			// the record source is down, nothing can be served
			res.Status = "fail"
			status = http.StatusServiceUnavailable
		case res.Status == "ok" && c.Status == "fail":
			res.Status = "degraded"
		}
	}
	return httpkit.Response{Status: status, Body: res}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Clock.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:     h.deps.ServiceName,
		Instance: version.Info(h.deps.ServiceName).Instance,
		Source:   h.deps.Source,
		Modules:  h.deps.Modules(),
		Started:  h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:   int64(uptime / time.Second),
	}, nil
}
