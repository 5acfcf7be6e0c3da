// Package service fetches records for a request and runs the kpi engine over them
package service

import (
	"context"
	"time"

	"maintkpi/internal/core/kpi"
	"maintkpi/internal/core/period"
	"maintkpi/internal/platform/logger"
	"maintkpi/internal/platform/metrics"
	"maintkpi/internal/services/api/kpi/domain"
	"maintkpi/internal/services/api/kpi/repo"
)

// Service is the kpi service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo    repo.Repo
	engine  *kpi.Engine
	metrics *metrics.Metrics
}

// New builds the service. m may be nil
func New(r repo.Repo, e *kpi.Engine, m *metrics.Metrics) *Svc {
	if r == nil {
		panic("kpi.Service requires a non nil Repo")
	}
	if e == nil {
		panic("kpi.Service requires a non nil Engine")
	}
	return &Svc{Repo: r, engine: e, metrics: m}
}

// Orders builds the order report
func (s *Svc) Orders(ctx context.Context, in domain.FiltersInput) (kpi.OrderReport, error) {
	f, err := in.Filters()
	if err != nil {
		return kpi.OrderReport{}, err
	}
	start := time.Now()
	recs, err := s.Repo.OrderRecords(ctx, f)
	if err != nil {
		s.observe(ctx, "orders", "", 0, 0, start, err)
		return kpi.OrderReport{}, err
	}
	rep, err := s.engine.OrderKPIs(recs, f)
	s.observe(ctx, "orders", rep.Granularity.String(), len(recs), len(rep.General), start, err)
	return rep, err
}

// Reliability builds the reliability report
func (s *Svc) Reliability(ctx context.Context, in domain.FiltersInput) (kpi.ReliabilityReport, error) {
	f, err := in.Filters()
	if err != nil {
		return kpi.ReliabilityReport{}, err
	}
	start := time.Now()
	incs, err := s.Repo.IncidentRecords(ctx, f)
	if err != nil {
		s.observe(ctx, "reliability", "", 0, 0, start, err)
		return kpi.ReliabilityReport{}, err
	}
	rep, err := s.engine.ReliabilityKPIs(incs, f)
	s.observe(ctx, "reliability", rep.Granularity.String(), len(incs), len(rep.Buckets), start, err)
	return rep, err
}

// ComparativeOrders builds one order report per study year
func (s *Svc) ComparativeOrders(ctx context.Context, in domain.ComparativeInput) ([]kpi.OrderReport, error) {
	f, err := in.Filters()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	recs, err := s.Repo.OrderRecords(ctx, f)
	if err != nil {
		s.observe(ctx, "orders_comparative", "", 0, 0, start, err)
		return nil, err
	}
	reps, err := s.engine.ComparativeOrderKPIs(recs, in.Years, in.Months, f)
	s.observe(ctx, "orders_comparative", studyGranularity(in), len(recs), len(reps), start, err)
	return reps, err
}

// ComparativeReliability builds one reliability report per study year
func (s *Svc) ComparativeReliability(ctx context.Context, in domain.ComparativeInput) ([]kpi.ReliabilityReport, error) {
	f, err := in.Filters()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	incs, err := s.Repo.IncidentRecords(ctx, f)
	if err != nil {
		s.observe(ctx, "reliability_comparative", "", 0, 0, start, err)
		return nil, err
	}
	reps, err := s.engine.ComparativeReliabilityKPIs(incs, in.Years, in.Months, f)
	s.observe(ctx, "reliability_comparative", studyGranularity(in), len(incs), len(reps), start, err)
	return reps, err
}

// OrderAssetTable flattens the order asset breakdown for export
func (s *Svc) OrderAssetTable(ctx context.Context, in domain.FiltersInput) (kpi.Table, error) {
	rep, err := s.Orders(ctx, in)
	if err != nil {
		return kpi.Table{}, err
	}
	return kpi.OrderAssetTable(rep), nil
}

// ReliabilityAssetTable flattens the reliability asset breakdown for export
func (s *Svc) ReliabilityAssetTable(ctx context.Context, in domain.FiltersInput) (kpi.Table, error) {
	rep, err := s.Reliability(ctx, in)
	if err != nil {
		return kpi.Table{}, err
	}
	return kpi.ReliabilityAssetTable(rep), nil
}

func studyGranularity(in domain.ComparativeInput) string {
	if len(in.Months) > 0 {
		return period.Weekly.String()
	}
	return period.Monthly.String()
}

// observe records one computation; size is the period or report count of the result
func (s *Svc) observe(ctx context.Context, kind, gran string, records, size int, start time.Time, err error) {
	elapsed := time.Since(start)
	s.metrics.ObserveComputation(kind, gran, records, elapsed, err)

	log := logger.C(ctx)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Dur("elapsed", elapsed).Msg("kpi computation failed")
		return
	}
	log.Debug().
		Str("kind", kind).
		Str("granularity", gran).
		Int("records", records).
		Int("periods", size).
		Dur("elapsed", elapsed).
		Msg("kpi computed")
}
