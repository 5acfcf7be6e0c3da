package kpi

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"maintkpi/internal/core/period"
	"maintkpi/internal/core/reliability"
)

func incident(id, order, asset int64, critical bool, opened, detected time.Time, repair time.Duration) IncidentRecord {
	in := IncidentRecord{IncidentID: id, OrderID: order, AssetID: asset, Critical: critical, DetectedAt: detected, OrderOpenedAt: opened}
	if repair > 0 {
		in.ResolvedAt = tp(detected.Add(repair))
	}
	return in
}

// asset 1 is critical with one order in March; asset 2 is non-critical with two orders in March
// (one incident unresolved) and one in April
func sampleIncidents() []IncidentRecord {
	mar1, mar10, mar12, apr5 := at(2024, 3, 1, 8, 0), at(2024, 3, 10, 8, 0), at(2024, 3, 12, 8, 0), at(2024, 4, 5, 8, 0)
	return []IncidentRecord{
		incident(1, 100, 1, true, mar1, mar1, 2*time.Hour),
		incident(2, 100, 1, true, mar1, at(2024, 3, 2, 0, 0), 3*time.Hour+30*time.Minute),
		incident(3, 101, 2, false, mar10, mar10, 2*time.Hour),
		incident(4, 103, 2, false, mar12, mar12, 0),
		incident(5, 102, 2, false, apr5, apr5, 10*time.Hour),
	}
}

func TestReliabilityKPIs_Buckets(t *testing.T) {
	rep, err := testEngine().ReliabilityKPIs(sampleIncidents(), Filters{Year: 2024})
	if err != nil {
		t.Fatalf("ReliabilityKPIs: %v", err)
	}
	if rep.Granularity != period.Monthly || len(rep.Buckets) != 12 {
		t.Fatalf("granularity %s with %d buckets", rep.Granularity, len(rep.Buckets))
	}

	mar := rep.Buckets[2].ReliabilityMetrics
	want := ReliabilityMetrics{
		Orders: 3, Incidents: 4,
		OperatingHours: 720 + 320, DowntimeHours: 2 + 4 + 2,
		MTBF: 344, MTTR: 2, Availability: 99.42, Reliability: 39.45,
	}
	if mar != want {
		t.Fatalf("march = %+v, want %+v", mar, want)
	}

	apr := rep.Buckets[3].ReliabilityMetrics
	want = ReliabilityMetrics{
		Orders: 1, Incidents: 1, OperatingHours: 320, DowntimeHours: 10,
		MTBF: 310, MTTR: 10, Availability: 96.88, Reliability: 35.62,
	}
	if apr != want {
		t.Fatalf("april = %+v, want %+v", apr, want)
	}

	jan := rep.Buckets[0]
	if jan.Incidents != 0 || jan.Orders != 0 || jan.Reliability != 100 || jan.Availability != 100 || jan.Label != "Ene" {
		t.Fatalf("empty bucket = %+v", jan)
	}
}

func TestReliabilityKPIs_GrandTotals(t *testing.T) {
	rep, err := testEngine().ReliabilityKPIs(sampleIncidents(), Filters{Year: 2024})
	if err != nil {
		t.Fatalf("ReliabilityKPIs: %v", err)
	}
	// MTBF = round(mean(344, 310)); MTTR = round(18 / 5)
	want := ReliabilityMetrics{
		Orders: 4, Incidents: 5, OperatingHours: 1360, DowntimeHours: 18,
		MTBF: 327, MTTR: 4, Availability: 98.79, Reliability: 37.58,
	}
	if rep.Totals != want {
		t.Fatalf("totals = %+v, want %+v", rep.Totals, want)
	}
}

func TestReliabilityKPIs_AssetTotalsAggregateDifferently(t *testing.T) {
	rep, err := testEngine().ReliabilityKPIs(sampleIncidents(), Filters{Year: 2024})
	if err != nil {
		t.Fatalf("ReliabilityKPIs: %v", err)
	}
	if len(rep.Assets) != 2 || rep.Assets[0].AssetID != 2 || rep.Assets[1].AssetID != 1 {
		t.Fatalf("assets must rank by incident count: %+v", rep.Assets)
	}

	a2 := rep.Assets[0]
	if len(a2.Buckets) != len(rep.Buckets) {
		t.Fatalf("asset series not aligned to axis")
	}
	marMTTR, aprMTTR := a2.Buckets[2].MTTR, a2.Buckets[3].MTTR
	if a2.Buckets[2].MTBF != 159 || a2.Buckets[3].MTBF != 310 || marMTTR != 1 || aprMTTR != 10 {
		t.Fatalf("asset 2 buckets = %+v / %+v", a2.Buckets[2], a2.Buckets[3])
	}
	// MTBF total is the mean of the per-period values
	if a2.Totals.MTBF != math.Round((159+310)/2.0) {
		t.Fatalf("asset 2 MTBF total = %v, want 235", a2.Totals.MTBF)
	}
	// MTTR total comes from summed downtime (12h over 3 incidents), not the mean of 1 and 10
	if a2.Totals.MTTR != 4 {
		t.Fatalf("asset 2 MTTR total = %v, want 4", a2.Totals.MTTR)
	}
	if a2.Totals.MTTR == math.Round((marMTTR+aprMTTR)/2) {
		t.Fatalf("MTTR total must not be averaged")
	}
	if a2.Totals.Availability != 98.33 || a2.Totals.Reliability != 25.62 {
		t.Fatalf("asset 2 totals = %+v", a2.Totals)
	}

	a1 := rep.Assets[1]
	if !a1.Critical || a1.Totals.MTBF != 714 || a1.Totals.MTTR != 3 || a1.Totals.Availability != 99.58 {
		t.Fatalf("asset 1 totals = %+v", a1.Totals)
	}
	// the exponent uses the non-critical horizon even for a critical asset
	if want := reliability.Reliability(714, 320); a1.Totals.Reliability != want || want != 63.88 {
		t.Fatalf("asset 1 reliability = %v, want %v", a1.Totals.Reliability, want)
	}
}

func TestReliabilityKPIs_Empty(t *testing.T) {
	rep, err := testEngine().ReliabilityKPIs(nil, Filters{Year: 2024, Month: 2})
	if err != nil {
		t.Fatalf("ReliabilityKPIs: %v", err)
	}
	if rep.Granularity != period.Weekly || len(rep.Buckets) != 0 || rep.Assets == nil || len(rep.Assets) != 0 {
		t.Fatalf("empty report = %+v", rep)
	}
	if rep.Totals.Reliability != 100 || rep.Totals.Availability != 100 {
		t.Fatalf("empty totals = %+v", rep.Totals)
	}
}

func TestReliabilityKPIs_Ranges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		var incs []IncidentRecord
		n := 1 + rng.Intn(40)
		for i := 0; i < n; i++ {
			opened := at(2023, 1, 1, 0, 0).AddDate(0, 0, rng.Intn(500))
			repair := time.Duration(rng.Intn(400)) * time.Hour
			incs = append(incs, incident(int64(i), int64(rng.Intn(n)), int64(rng.Intn(4)), rng.Intn(2) == 0, opened, opened, repair))
		}
		rep, err := testEngine().ReliabilityKPIs(incs, Filters{})
		if err != nil {
			t.Fatalf("ReliabilityKPIs: %v", err)
		}
		check := func(m ReliabilityMetrics) {
			if m.Availability < 0 || m.Availability > 100 || m.Reliability <= 0 || m.Reliability > 100 {
				t.Fatalf("metrics out of range: %+v", m)
			}
		}
		check(rep.Totals)
		for _, b := range rep.Buckets {
			check(b.ReliabilityMetrics)
		}
		for _, a := range rep.Assets {
			check(a.Totals)
			for _, b := range a.Buckets {
				check(b.ReliabilityMetrics)
			}
		}
	}
}

func TestReliabilityKPIs_Deterministic(t *testing.T) {
	a, _ := testEngine().ReliabilityKPIs(sampleIncidents(), Filters{})
	b, _ := testEngine().ReliabilityKPIs(sampleIncidents(), Filters{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical input produced different reports")
	}
}
