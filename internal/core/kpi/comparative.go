package kpi

import (
	"slices"
	"time"

	"maintkpi/internal/core/period"
	perr "maintkpi/internal/platform/errors"
)

// study is a validated comparative request: sorted distinct years, optional months
type study struct {
	years  []int
	months []int
	g      period.Granularity
}

func newStudy(years, months []int, f Filters) (study, error) {
	if len(years) == 0 {
		return study{}, perr.WithField(perr.InvalidArgf("comparative study needs at least one year"), "years")
	}
	check := f
	check.Years, check.Months = years, months
	if err := check.Validate(); err != nil {
		return study{}, err
	}
	s := study{years: slices.Compact(slices.Sorted(slices.Values(years))), g: period.Monthly}
	if len(months) > 0 {
		s.months = slices.Compact(slices.Sorted(slices.Values(months)))
		s.g = period.Weekly
	}
	return s, nil
}

func (s study) keep(t time.Time) bool {
	t = t.UTC()
	if !slices.Contains(s.years, t.Year()) {
		return false
	}
	return len(s.months) == 0 || slices.Contains(s.months, int(t.Month()))
}

// periodOf places t on the study axis; its year is the calendar year the record is split by
func (s study) periodOf(t time.Time) period.Period { return period.Of(t, s.g) }

// split groups the kept records by calendar year and returns the observed periods of all of them
func split[R any](s study, recs []R, at func(R) time.Time) (map[int][]R, []period.Period) {
	byYear := map[int][]R{}
	var observed []period.Period
	for _, r := range recs {
		t := at(r)
		if !s.keep(t) {
			continue
		}
		y := t.UTC().Year()
		byYear[y] = append(byYear[y], r)
		observed = append(observed, s.periodOf(t))
	}
	return byYear, observed
}

// ComparativeOrderKPIs runs the order aggregation once per selected year on a shared axis.
// No matching records at all yields an empty list
func (e *Engine) ComparativeOrderKPIs(recs []OrderRecord, years, months []int, f Filters) ([]OrderReport, error) {
	s, err := newStudy(years, months, f)
	if err != nil {
		return nil, err
	}
	byYear, observed := split(s, recs, func(r OrderRecord) time.Time { return r.OpenedAt })
	if len(observed) == 0 {
		return []OrderReport{}, nil
	}
	shared := period.AxisBuilder{Granularity: s.g}.Shared(observed)

	out := make([]OrderReport, 0, len(s.years))
	for _, y := range s.years {
		var rep OrderReport
		if sub := byYear[y]; len(sub) == 0 {
			rep = emptyOrderReport(s.g)
		} else {
			rep = buildOrderReport(sub, shared.ForYear(y), s.periodOf)
		}
		rep.Year = y
		out = append(out, rep)
	}
	return out, nil
}

// ComparativeReliabilityKPIs runs the reliability aggregation once per selected year on a shared axis
func (e *Engine) ComparativeReliabilityKPIs(incs []IncidentRecord, years, months []int, f Filters) ([]ReliabilityReport, error) {
	s, err := newStudy(years, months, f)
	if err != nil {
		return nil, err
	}
	byYear, observed := split(s, incs, func(r IncidentRecord) time.Time { return r.OrderOpenedAt })
	if len(observed) == 0 {
		return []ReliabilityReport{}, nil
	}
	shared := period.AxisBuilder{Granularity: s.g}.Shared(observed)

	out := make([]ReliabilityReport, 0, len(s.years))
	for _, y := range s.years {
		var rep ReliabilityReport
		if sub := byYear[y]; len(sub) == 0 {
			rep = emptyReliabilityReport(s.g)
		} else {
			rep = buildReliabilityReport(sub, shared.ForYear(y), s.periodOf)
		}
		rep.Year = y
		out = append(out, rep)
	}
	return out, nil
}
