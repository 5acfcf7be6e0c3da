package kpi

import (
	"sort"
	"time"

	"maintkpi/internal/core/period"
	"maintkpi/internal/core/reliability"
)

// topAssetsPerBucket is how many assets a per-type bucket ranks
const topAssetsPerBucket = 3

// OrderTotals holds state counts and their share of Total
type OrderTotals struct {
	Total                   int     `json:"total"`
	Completed               int     `json:"completed"`
	Pending                 int     `json:"pending"`
	AwaitingMaterial        int     `json:"awaiting_material"`
	PercentCompleted        float64 `json:"percent_completed"`
	PercentPending          float64 `json:"percent_pending"`
	PercentAwaitingMaterial float64 `json:"percent_awaiting_material"`
}

func (t *OrderTotals) add(s StateID) {
	t.Total++
	switch {
	case s.Completed():
		t.Completed++
	case s.Pending():
		t.Pending++
	case s.AwaitingMaterial():
		t.AwaitingMaterial++
	}
}

func (t *OrderTotals) finish() {
	t.PercentCompleted = reliability.Percent(t.Completed, t.Total)
	t.PercentPending = reliability.Percent(t.Pending, t.Total)
	t.PercentAwaitingMaterial = reliability.Percent(t.AwaitingMaterial, t.Total)
}

// OrderBucket is the general maintenance row for one axis entry
type OrderBucket struct {
	period.Entry
	OrderTotals
}

// AssetCount is an asset ranked by how many orders it had in a bucket
type AssetCount struct {
	AssetRef
	Count int `json:"count"`
}

// TypeBucket is one (order type, period) cell
type TypeBucket struct {
	period.Entry
	Count          int          `json:"count"`
	PercentOfTotal float64      `json:"percent_of_total"`
	TopAssets      []AssetCount `json:"top_assets"`
}

// TypeSeries is the per-period series of one order type, aligned to the axis
type TypeSeries struct {
	OrderTypeID   int64        `json:"order_type_id"`
	OrderTypeName string       `json:"order_type_name,omitempty"`
	Buckets       []TypeBucket `json:"buckets"`
}

// AssetOrders is the per-asset breakdown row
type AssetOrders struct {
	AssetRef
	OrderTotals
}

// OrderReport is the order KPI result
type OrderReport struct {
	// Year is set on comparative reports only
	Year        int                `json:"year,omitempty"`
	Granularity period.Granularity `json:"granularity"`
	MultiYear   bool               `json:"multi_year"`
	Totals      OrderTotals        `json:"totals"`
	General     []OrderBucket      `json:"general"`
	Types       []TypeSeries       `json:"types"`
	Assets      []AssetOrders      `json:"assets"`
}

func emptyOrderReport(g period.Granularity) OrderReport {
	return OrderReport{
		Granularity: g,
		General:     []OrderBucket{},
		Types:       []TypeSeries{},
		Assets:      []AssetOrders{},
	}
}

type typeKey struct {
	typeID int64
	p      period.Period
}

// buildOrderReport aggregates recs against ax. periodOf must map every record onto an axis period
func buildOrderReport(recs []OrderRecord, ax period.Axis, periodOf func(time.Time) period.Period) OrderReport {
	rep := emptyOrderReport(ax.Granularity)
	rep.MultiYear = ax.MultiYear
	if len(recs) == 0 {
		return rep
	}

	perPeriod := map[period.Period]*OrderTotals{}
	perType := map[typeKey][]OrderRecord{}
	perAsset := map[int64]*AssetOrders{}
	typeNames := map[int64]string{}

	for _, r := range recs {
		p := periodOf(r.OpenedAt)
		rep.Totals.add(r.StateID)

		pt, ok := perPeriod[p]
		if !ok {
			pt = &OrderTotals{}
			perPeriod[p] = pt
		}
		pt.add(r.StateID)

		k := typeKey{typeID: r.OrderTypeID, p: p}
		perType[k] = append(perType[k], r)
		if typeNames[r.OrderTypeID] == "" {
			typeNames[r.OrderTypeID] = r.OrderTypeName
		}

		a, ok := perAsset[r.AssetID]
		if !ok {
			a = &AssetOrders{AssetRef: AssetRef{AssetID: r.AssetID, AssetName: r.AssetName, Critical: r.Critical}}
			perAsset[r.AssetID] = a
		}
		a.add(r.StateID)
	}
	rep.Totals.finish()

	rep.General = make([]OrderBucket, 0, ax.Len())
	for _, e := range ax.Entries {
		b := OrderBucket{Entry: e}
		if pt, ok := perPeriod[e.Period]; ok {
			b.OrderTotals = *pt
			b.finish()
		}
		rep.General = append(rep.General, b)
	}

	typeIDs := make([]int64, 0, len(typeNames))
	for id := range typeNames {
		typeIDs = append(typeIDs, id)
	}
	sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })

	rep.Types = make([]TypeSeries, 0, len(typeIDs))
	for _, id := range typeIDs {
		s := TypeSeries{OrderTypeID: id, OrderTypeName: typeNames[id], Buckets: make([]TypeBucket, 0, ax.Len())}
		for _, e := range ax.Entries {
			b := TypeBucket{Entry: e, TopAssets: []AssetCount{}}
			if cell := perType[typeKey{typeID: id, p: e.Period}]; len(cell) > 0 {
				b.Count = len(cell)
				b.PercentOfTotal = reliability.Percent(b.Count, perPeriod[e.Period].Total)
				b.TopAssets = topAssets(cell, topAssetsPerBucket)
			}
			s.Buckets = append(s.Buckets, b)
		}
		rep.Types = append(rep.Types, s)
	}

	rep.Assets = make([]AssetOrders, 0, len(perAsset))
	for _, a := range perAsset {
		a.finish()
		rep.Assets = append(rep.Assets, *a)
	}
	sort.Slice(rep.Assets, func(i, j int) bool {
		if rep.Assets[i].Total != rep.Assets[j].Total {
			return rep.Assets[i].Total > rep.Assets[j].Total
		}
		return rep.Assets[i].AssetID < rep.Assets[j].AssetID
	})
	return rep
}

// topAssets ranks the assets of recs by order count, ties by asset id
func topAssets(recs []OrderRecord, n int) []AssetCount {
	idx := map[int64]int{}
	out := []AssetCount{}
	for _, r := range recs {
		i, ok := idx[r.AssetID]
		if !ok {
			i = len(out)
			idx[r.AssetID] = i
			out = append(out, AssetCount{AssetRef: AssetRef{AssetID: r.AssetID, AssetName: r.AssetName, Critical: r.Critical}})
		}
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].AssetID < out[j].AssetID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
