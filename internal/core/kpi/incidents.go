package kpi

import (
	"math"
	"sort"
	"time"

	"maintkpi/internal/core/period"
	"maintkpi/internal/core/reliability"
)

// ReliabilityMetrics is the MTBF family for one bucket, one asset or the whole report
type ReliabilityMetrics struct {
	Orders         int     `json:"orders"`
	Incidents      int     `json:"incidents"`
	OperatingHours float64 `json:"operating_hours"`
	DowntimeHours  float64 `json:"downtime_hours"`
	MTBF           float64 `json:"mtbf"`
	MTTR           float64 `json:"mttr"`
	Availability   float64 `json:"availability"`
	Reliability    float64 `json:"reliability"`
}

// ReliabilityBucket is one axis entry of a reliability series
type ReliabilityBucket struct {
	period.Entry
	ReliabilityMetrics
}

// AssetReliability is the per-asset breakdown with its own axis-aligned series
type AssetReliability struct {
	AssetRef
	Buckets []ReliabilityBucket `json:"buckets"`
	Totals  ReliabilityMetrics  `json:"totals"`
}

// ReliabilityReport is the reliability KPI result
type ReliabilityReport struct {
	// Year is set on comparative reports only
	Year        int                 `json:"year,omitempty"`
	Granularity period.Granularity  `json:"granularity"`
	MultiYear   bool                `json:"multi_year"`
	Totals      ReliabilityMetrics  `json:"totals"`
	Buckets     []ReliabilityBucket `json:"buckets"`
	Assets      []AssetReliability  `json:"assets"`
}

func emptyReliabilityReport(g period.Granularity) ReliabilityReport {
	return ReliabilityReport{
		Granularity: g,
		Totals:      emptyMetrics(),
		Buckets:     []ReliabilityBucket{},
		Assets:      []AssetReliability{},
	}
}

// emptyMetrics is a bucket without failures
func emptyMetrics() ReliabilityMetrics {
	return ReliabilityMetrics{Availability: reliability.Full, Reliability: reliability.Full}
}

// bucketMetrics computes one period bucket from the incidents whose order opened in it
func bucketMetrics(g period.Granularity, incs []IncidentRecord) ReliabilityMetrics {
	if len(incs) == 0 {
		return emptyMetrics()
	}
	orders := map[int64]struct{}{}
	critical := map[int64]struct{}{}
	nonCritical := map[int64]struct{}{}
	var down float64
	for _, in := range incs {
		orders[in.OrderID] = struct{}{}
		if in.Critical {
			critical[in.AssetID] = struct{}{}
		} else {
			nonCritical[in.AssetID] = struct{}{}
		}
		down += reliability.DowntimeHours(in.Downtime().Seconds())
	}
	m := ReliabilityMetrics{
		Orders:         len(orders),
		Incidents:      len(incs),
		OperatingHours: reliability.OperatingTime(g, len(critical), len(nonCritical)),
		DowntimeHours:  down,
	}
	m.MTBF = reliability.MTBF(m.OperatingHours, m.DowntimeHours, m.Orders)
	m.MTTR = reliability.MTTR(m.DowntimeHours, m.Incidents)
	m.Availability = reliability.Availability(m.MTBF, m.MTTR)
	m.Reliability = reliability.Reliability(m.MTBF, reliability.PeriodDuration(g))
	return m
}

// rollup aggregates a series: MTBF is the rounded mean of the per-period MTBF over
// periods with at least one order, while MTTR is recomputed from the summed downtime
func rollup(g period.Granularity, buckets []ReliabilityBucket) ReliabilityMetrics {
	var (
		m     ReliabilityMetrics
		mtbfs []float64
	)
	for _, b := range buckets {
		m.Orders += b.Orders
		m.Incidents += b.Incidents
		m.OperatingHours += b.OperatingHours
		m.DowntimeHours += b.DowntimeHours
		if b.Orders > 0 {
			mtbfs = append(mtbfs, b.MTBF)
		}
	}
	if m.Incidents == 0 {
		return emptyMetrics()
	}
	m.MTBF = math.Round(reliability.Mean(mtbfs))
	m.MTTR = reliability.MTTR(m.DowntimeHours, m.Incidents)
	m.Availability = reliability.Availability(m.MTBF, m.MTTR)
	m.Reliability = reliability.Reliability(m.MTBF, reliability.PeriodDuration(g))
	return m
}

// series lays grouped incidents onto the axis; empty periods get zero-count buckets
func series(ax period.Axis, grouped map[period.Period][]IncidentRecord) []ReliabilityBucket {
	out := make([]ReliabilityBucket, 0, ax.Len())
	for _, e := range ax.Entries {
		out = append(out, ReliabilityBucket{Entry: e, ReliabilityMetrics: bucketMetrics(ax.Granularity, grouped[e.Period])})
	}
	return out
}

// buildReliabilityReport aggregates incs against ax. periodOf maps an order opening onto an axis period
func buildReliabilityReport(incs []IncidentRecord, ax period.Axis, periodOf func(time.Time) period.Period) ReliabilityReport {
	rep := emptyReliabilityReport(ax.Granularity)
	rep.MultiYear = ax.MultiYear
	if len(incs) == 0 {
		return rep
	}

	all := map[period.Period][]IncidentRecord{}
	perAsset := map[int64]map[period.Period][]IncidentRecord{}
	refs := map[int64]AssetRef{}
	for _, in := range incs {
		p := periodOf(in.OrderOpenedAt)
		all[p] = append(all[p], in)
		g, ok := perAsset[in.AssetID]
		if !ok {
			g = map[period.Period][]IncidentRecord{}
			perAsset[in.AssetID] = g
			refs[in.AssetID] = AssetRef{AssetID: in.AssetID, AssetName: in.AssetName, Critical: in.Critical}
		}
		g[p] = append(g[p], in)
	}

	rep.Buckets = series(ax, all)
	rep.Totals = rollup(ax.Granularity, rep.Buckets)

	rep.Assets = make([]AssetReliability, 0, len(perAsset))
	for id, grouped := range perAsset {
		a := AssetReliability{AssetRef: refs[id], Buckets: series(ax, grouped)}
		a.Totals = rollup(ax.Granularity, a.Buckets)
		rep.Assets = append(rep.Assets, a)
	}
	sort.Slice(rep.Assets, func(i, j int) bool {
		if rep.Assets[i].Totals.Incidents != rep.Assets[j].Totals.Incidents {
			return rep.Assets[i].Totals.Incidents > rep.Assets[j].Totals.Incidents
		}
		return rep.Assets[i].AssetID < rep.Assets[j].AssetID
	})
	return rep
}
