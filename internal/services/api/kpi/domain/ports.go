package domain

import (
	"context"

	"maintkpi/internal/core/kpi"
)

// ServicePort is consumed by the handlers and by other modules
type ServicePort interface {
	Orders(ctx context.Context, in FiltersInput) (kpi.OrderReport, error)
	Reliability(ctx context.Context, in FiltersInput) (kpi.ReliabilityReport, error)
	ComparativeOrders(ctx context.Context, in ComparativeInput) ([]kpi.OrderReport, error)
	ComparativeReliability(ctx context.Context, in ComparativeInput) ([]kpi.ReliabilityReport, error)
	OrderAssetTable(ctx context.Context, in FiltersInput) (kpi.Table, error)
	ReliabilityAssetTable(ctx context.Context, in FiltersInput) (kpi.Table, error)
}
