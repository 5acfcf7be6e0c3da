package kpi

import (
	"slices"
	"time"

	"maintkpi/internal/core/period"
	perr "maintkpi/internal/platform/errors"
)

// Filters is the request filter set shared by the query layer and the engine.
// Zero values mean unfiltered
type Filters struct {
	Year          int        `json:"year,omitempty"`
	Month         int        `json:"month,omitempty"`
	Years         []int      `json:"years,omitempty"`
	Months        []int      `json:"months,omitempty"`
	CostCenterID  int64      `json:"cost_center_id,omitempty"`
	CriticalityID int64      `json:"criticality_id,omitempty"`
	AssetID       int64      `json:"asset_id,omitempty"`
	DateFrom      *time.Time `json:"date_from,omitempty"`
	DateTo        *time.Time `json:"date_to,omitempty"`
}

// Validate rejects filter combinations no report can be built from
func (f Filters) Validate() error {
	if f.Year < 0 {
		return perr.WithField(perr.InvalidArgf("year must be positive, got %d", f.Year), "year")
	}
	if f.Month < 0 || f.Month > 12 {
		return perr.WithField(perr.InvalidArgf("month must be within 1..12, got %d", f.Month), "month")
	}
	for _, y := range f.Years {
		if y <= 0 {
			return perr.WithField(perr.InvalidArgf("years must be positive, got %d", y), "years")
		}
	}
	for _, m := range f.Months {
		if m < 1 || m > 12 {
			return perr.WithField(perr.InvalidArgf("months must be within 1..12, got %d", m), "months")
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return perr.WithField(perr.InvalidArgf("date_from %s is after date_to %s",
			f.DateFrom.Format(time.DateOnly), f.DateTo.Format(time.DateOnly)), "date_from")
	}
	return nil
}

// Window is the subset of filters the period resolver looks at
func (f Filters) Window() period.Window {
	return period.Window{Year: f.Year, Month: f.Month, From: f.DateFrom, To: f.DateTo}
}

// Covers reports whether t passes the time based filters (year, month, years, months, date range).
// The query layer applies these in SQL; Covers serves callers holding unfiltered records
func (f Filters) Covers(t time.Time) bool {
	t = t.UTC()
	if f.Year != 0 && t.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(t.Month()) != f.Month {
		return false
	}
	if len(f.Years) > 0 && !slices.Contains(f.Years, t.Year()) {
		return false
	}
	if len(f.Months) > 0 && !slices.Contains(f.Months, int(t.Month())) {
		return false
	}
	if f.DateFrom != nil && t.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.After(*f.DateTo) {
		return false
	}
	return true
}
