// Package repo fetches the flat order and incident records the kpi engine consumes
package repo

import (
	"context"
	"time"

	"maintkpi/internal/core/kpi"
	"maintkpi/internal/modkit/repokit"
)

// Repo is the record source. Filters are applied in the query; the records come back
// ordered by opening time
type Repo interface {
	OrderRecords(ctx context.Context, f kpi.Filters) ([]kpi.OrderRecord, error)
	IncidentRecords(ctx context.Context, f kpi.Filters) ([]kpi.IncidentRecord, error)
}

type (
	// PG binds the repo to the normalized postgres schema
	PG struct{}
	// CH binds the repo to the denormalized clickhouse replica
	CH struct{}

	queries struct {
		q         repokit.Reader
		d         dialect
		orders    string
		incidents string
		orderCols columns
		incCols   columns
	}
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// NewCH returns the clickhouse binder
func NewCH() repokit.Binder[Repo] { return CH{} }

// Bind wires q to the postgres queries
func (PG) Bind(q repokit.Reader) Repo {
	return &queries{
		q:         q,
		d:         postgres,
		orders:    pgOrders,
		incidents: pgIncidents,
		orderCols: columns{opened: "o.opened_at", asset: "o.asset_id", costCenter: "a.cost_center_id", criticality: "a.criticality_id"},
		incCols:   columns{opened: "o.opened_at", asset: "o.asset_id", costCenter: "a.cost_center_id", criticality: "a.criticality_id", state: "o.state_id"},
	}
}

// Bind wires q to the clickhouse queries
func (CH) Bind(q repokit.Reader) Repo {
	return &queries{
		q:         q,
		d:         clickhouse,
		orders:    chOrders,
		incidents: chIncidents,
		orderCols: columns{opened: "opened_at", asset: "asset_id", costCenter: "cost_center_id", criticality: "criticality_id"},
		incCols:   columns{opened: "order_opened_at", asset: "asset_id", costCenter: "cost_center_id", criticality: "criticality_id", state: "order_state_id"},
	}
}

const pgOrders = `
select o.id, o.asset_id, a.name, o.order_type_id, t.name, o.state_id, o.opened_at, a.critical
from work_orders o
join assets a on a.id = o.asset_id
join order_types t on t.id = o.order_type_id
%s
order by o.opened_at, o.id
`

// incidents of closed orders only; the order state condition is always the first parameter
const pgIncidents = `
select i.id, i.order_id, o.asset_id, a.name, a.critical, i.detected_at, i.resolved_at, o.opened_at
from incidents i
join work_orders o on o.id = i.order_id
join assets a on a.id = o.asset_id
%s
order by o.opened_at, i.id
`

const chOrders = `
select order_id, asset_id, asset_name, order_type_id, order_type_name, state_id, opened_at, critical
from kpi_orders
%s
order by opened_at, order_id
`

const chIncidents = `
select incident_id, order_id, asset_id, asset_name, critical, detected_at, resolved_at, order_opened_at
from kpi_incidents
%s
order by order_opened_at, incident_id
`

func (r *queries) OrderRecords(ctx context.Context, f kpi.Filters) ([]kpi.OrderRecord, error) {
	w := newWhere(r.d).filters(r.orderCols, f)
	return repokit.Many(ctx, r.q, scanOrder, render(r.orders, w), w.args...)
}

func (r *queries) IncidentRecords(ctx context.Context, f kpi.Filters) ([]kpi.IncidentRecord, error) {
	w := newWhere(r.d)
	w.add(r.incCols.state+" = %s", int64(kpi.StateClosed))
	w.filters(r.incCols, f)
	return repokit.Many(ctx, r.q, scanIncident, render(r.incidents, w), w.args...)
}

func scanOrder(row repokit.Row) (kpi.OrderRecord, error) {
	var (
		rec   kpi.OrderRecord
		state int64
	)
	err := row.Scan(&rec.OrderID, &rec.AssetID, &rec.AssetName, &rec.OrderTypeID, &rec.OrderTypeName,
		&state, &rec.OpenedAt, &rec.Critical)
	rec.StateID = kpi.StateID(state)
	rec.OpenedAt = rec.OpenedAt.UTC()
	return rec, err
}

func scanIncident(row repokit.Row) (kpi.IncidentRecord, error) {
	var (
		rec      kpi.IncidentRecord
		resolved *time.Time
	)
	err := row.Scan(&rec.IncidentID, &rec.OrderID, &rec.AssetID, &rec.AssetName, &rec.Critical,
		&rec.DetectedAt, &resolved, &rec.OrderOpenedAt)
	if resolved != nil {
		t := resolved.UTC()
		rec.ResolvedAt = &t
	}
	rec.DetectedAt = rec.DetectedAt.UTC()
	rec.OrderOpenedAt = rec.OrderOpenedAt.UTC()
	return rec, err
}
