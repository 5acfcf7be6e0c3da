// Package domain holds the kpi request DTOs and the service contract
package domain

import (
	"time"

	"maintkpi/internal/core/kpi"
	perr "maintkpi/internal/platform/errors"
)

// FiltersInput is the filter body every kpi endpoint accepts. Zero means unfiltered
type FiltersInput struct {
	Year          int    `json:"year,omitempty" validate:"omitempty,min=1900,max=9999" example:"2024"`
	Month         int    `json:"month,omitempty" validate:"omitempty,min=1,max=12" example:"3"`
	CostCenterID  int64  `json:"cost_center_id,omitempty" validate:"omitempty,min=1" example:"4"`
	CriticalityID int64  `json:"criticality_id,omitempty" validate:"omitempty,min=1" example:"1"`
	AssetID       int64  `json:"asset_id,omitempty" validate:"omitempty,min=1" example:"118"`
	DateFrom      string `json:"date_from,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	DateTo        string `json:"date_to,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-03-31"`
}

// ComparativeInput selects the years, and optionally months, of a comparative study
type ComparativeInput struct {
	FiltersInput
	Years  []int `json:"years" validate:"required,min=1,dive,min=1900,max=9999" example:"2022,2023"`
	Months []int `json:"months,omitempty" validate:"omitempty,dive,min=1,max=12" example:"1,2"`
}

// Filters converts the input to engine filters. date_to covers its whole day
func (in FiltersInput) Filters() (kpi.Filters, error) {
	f := kpi.Filters{
		Year:          in.Year,
		Month:         in.Month,
		CostCenterID:  in.CostCenterID,
		CriticalityID: in.CriticalityID,
		AssetID:       in.AssetID,
	}
	if in.DateFrom != "" {
		d, err := time.Parse(time.DateOnly, in.DateFrom)
		if err != nil {
			return kpi.Filters{}, perr.WithField(perr.InvalidArgf("date_from %q is not a date", in.DateFrom), "date_from")
		}
		f.DateFrom = &d
	}
	if in.DateTo != "" {
		d, err := time.Parse(time.DateOnly, in.DateTo)
		if err != nil {
			return kpi.Filters{}, perr.WithField(perr.InvalidArgf("date_to %q is not a date", in.DateTo), "date_to")
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.DateTo = &end
	}
	return f, f.Validate()
}

// Filters converts the input to engine filters restricted to the study years and months
func (in ComparativeInput) Filters() (kpi.Filters, error) {
	if len(in.Years) == 0 {
		return kpi.Filters{}, perr.WithField(perr.InvalidArgf("comparative study needs at least one year"), "years")
	}
	f, err := in.FiltersInput.Filters()
	if err != nil {
		return kpi.Filters{}, err
	}
	f.Years, f.Months = in.Years, in.Months
	return f, f.Validate()
}
