// Package http is the kpi HTTP transport
package http

import (
	stdhttp "net/http"

	"maintkpi/internal/modkit/httpkit"
	"maintkpi/internal/services/api/kpi/domain"
)

// Register mounts the kpi endpoints on r
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/orders", h.orders)
	httpkit.PostJSON(r, "/reliability", h.reliability)

	// one report per study year
	httpkit.PostJSON(r, "/orders/comparative", h.comparativeOrders)
	httpkit.PostJSON(r, "/reliability/comparative", h.comparativeReliability)

	// flattened asset breakdowns for the spreadsheet export
	httpkit.PostJSON(r, "/orders/assets/table", h.orderTable)
	httpkit.PostJSON(r, "/reliability/assets/table", h.reliabilityTable)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Order KPIs
// @Tags KPI
// @Accept json
// @Produce json
// @Param payload body domain.FiltersInput true "Filters"
// @Success 200 {object} kpi.OrderReport "ok"
// @Router /kpi/orders [post]
func (h *handlers) orders(r *stdhttp.Request, in domain.FiltersInput) (any, error) {
	return h.svc.Orders(r.Context(), in)
}

// @Summary Reliability KPIs
// @Tags KPI
// @Accept json
// @Produce json
// @Param payload body domain.FiltersInput true "Filters"
// @Success 200 {object} kpi.ReliabilityReport "ok"
// @Router /kpi/reliability [post]
func (h *handlers) reliability(r *stdhttp.Request, in domain.FiltersInput) (any, error) {
	return h.svc.Reliability(r.Context(), in)
}

// @Summary Comparative order KPIs
// @Tags KPI
// @Accept json
// @Produce json
// @Param payload body domain.ComparativeInput true "Study"
// @Success 200 {array} kpi.OrderReport "ok"
// @Router /kpi/orders/comparative [post]
func (h *handlers) comparativeOrders(r *stdhttp.Request, in domain.ComparativeInput) (any, error) {
	return h.svc.ComparativeOrders(r.Context(), in)
}

// @Summary Comparative reliability KPIs
// @Tags KPI
// @Accept json
// @Produce json
// @Param payload body domain.ComparativeInput true "Study"
// @Success 200 {array} kpi.ReliabilityReport "ok"
// @Router /kpi/reliability/comparative [post]
func (h *handlers) comparativeReliability(r *stdhttp.Request, in domain.ComparativeInput) (any, error) {
	return h.svc.ComparativeReliability(r.Context(), in)
}

// @Summary Order breakdown per asset, as a table
// @Tags KPI
// @Param payload body domain.FiltersInput true "Filters"
// @Success 200 {object} kpi.Table "ok"
// @Router /kpi/orders/assets/table [post]
func (h *handlers) orderTable(r *stdhttp.Request, in domain.FiltersInput) (any, error) {
	return h.svc.OrderAssetTable(r.Context(), in)
}

// @Summary Reliability breakdown per asset, as a table
// @Tags KPI
// @Param payload body domain.FiltersInput true "Filters"
// @Success 200 {object} kpi.Table "ok"
// @Router /kpi/reliability/assets/table [post]
func (h *handlers) reliabilityTable(r *stdhttp.Request, in domain.FiltersInput) (any, error) {
	return h.svc.ReliabilityAssetTable(r.Context(), in)
}
