package kpi

import (
	"time"

	"maintkpi/internal/core/period"
	ptime "maintkpi/internal/platform/time"
)

// Engine computes KPI reports. The zero value is not usable; build one with New.
// An Engine is safe for concurrent use: every call works on its own data
type Engine struct {
	clock ptime.Clock
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used when a date range has no end
func WithClock(c ptime.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New returns an Engine on the system clock unless overridden
func New(opts ...Option) *Engine {
	e := &Engine{clock: ptime.System}
	for _, o := range opts {
		o(e)
	}
	return e
}

// resolve picks the granularity for f given the earliest opening in the record set
func (e *Engine) resolve(f Filters, earliest time.Time) period.Resolution {
	return period.Resolve(f.Window(), earliest, ptime.Today(e.clock))
}

// OrderKPIs computes completion percentages, the general and per-type series and the asset breakdown
func (e *Engine) OrderKPIs(recs []OrderRecord, f Filters) (OrderReport, error) {
	if err := f.Validate(); err != nil {
		return OrderReport{}, err
	}
	var earliest time.Time
	for _, r := range recs {
		if earliest.IsZero() || r.OpenedAt.Before(earliest) {
			earliest = r.OpenedAt
		}
	}
	res := e.resolve(f, earliest)
	if len(recs) == 0 {
		return emptyOrderReport(res.Granularity), nil
	}
	of := func(t time.Time) period.Period { return period.Of(t, res.Granularity) }
	observed := make([]period.Period, len(recs))
	for i, r := range recs {
		observed[i] = of(r.OpenedAt)
	}
	ax := period.NewAxisBuilder(res).Build(observed)
	return buildOrderReport(recs, ax, of), nil
}

// ReliabilityKPIs computes the MTBF, MTTR, availability and reliability series, per asset and overall
func (e *Engine) ReliabilityKPIs(incs []IncidentRecord, f Filters) (ReliabilityReport, error) {
	if err := f.Validate(); err != nil {
		return ReliabilityReport{}, err
	}
	var earliest time.Time
	for _, in := range incs {
		if earliest.IsZero() || in.OrderOpenedAt.Before(earliest) {
			earliest = in.OrderOpenedAt
		}
	}
	res := e.resolve(f, earliest)
	if len(incs) == 0 {
		return emptyReliabilityReport(res.Granularity), nil
	}
	of := func(t time.Time) period.Period { return period.Of(t, res.Granularity) }
	observed := make([]period.Period, len(incs))
	for i, in := range incs {
		observed[i] = of(in.OrderOpenedAt)
	}
	ax := period.NewAxisBuilder(res).Build(observed)
	return buildReliabilityReport(incs, ax, of), nil
}
