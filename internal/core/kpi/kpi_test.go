package kpi

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"maintkpi/internal/core/period"
	perr "maintkpi/internal/platform/errors"
	ptime "maintkpi/internal/platform/time"
)

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func testEngine() *Engine { return New(WithClock(ptime.Fixed(at(2024, time.June, 20, 12, 0)))) }

func order(id, asset, typ int64, s StateID, opened time.Time) OrderRecord {
	return OrderRecord{OrderID: id, AssetID: asset, OrderTypeID: typ, StateID: s, OpenedAt: opened}
}

func sampleOrders() []OrderRecord {
	o1 := order(1, 10, 1, StateClosed, at(2024, time.March, 5, 8, 0))
	o1.AssetName, o1.Critical, o1.OrderTypeName = "Bomba", true, "Correctivo"
	o2 := order(2, 10, 1, StateOpen, at(2024, time.March, 20, 8, 0))
	o2.AssetName, o2.Critical = "Bomba", true
	o3 := order(3, 11, 2, StateMaterialOrdered, at(2024, time.March, 21, 8, 0))
	o3.OrderTypeName = "Preventivo"
	o4 := order(4, 12, 1, StateCancelled, at(2024, time.May, 2, 8, 0))
	return []OrderRecord{o1, o2, o3, o4}
}

func TestStates(t *testing.T) {
	if !StateClosed.Completed() || StateOpen.Completed() {
		t.Fatalf("completed state mismatch")
	}
	if !StateOpen.Pending() || !StateInProgress.Pending() || StateClosed.Pending() {
		t.Fatalf("pending state mismatch")
	}
	for _, s := range []StateID{StateMaterialRequested, StateMaterialQuoted, StateMaterialOrdered, StateMaterialInTransit} {
		if !s.AwaitingMaterial() {
			t.Fatalf("state %d should await material", s)
		}
	}
	if StateCancelled.Completed() || StateCancelled.Pending() || StateCancelled.AwaitingMaterial() {
		t.Fatalf("cancelled orders belong to no category")
	}
}

func TestOrderKPIs_YearView(t *testing.T) {
	rep, err := testEngine().OrderKPIs(sampleOrders(), Filters{Year: 2024})
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	if rep.Granularity != period.Monthly || rep.MultiYear {
		t.Fatalf("granularity = %s multi = %v", rep.Granularity, rep.MultiYear)
	}
	want := OrderTotals{Total: 4, Completed: 1, Pending: 1, AwaitingMaterial: 1,
		PercentCompleted: 25, PercentPending: 25, PercentAwaitingMaterial: 25}
	if rep.Totals != want {
		t.Fatalf("totals = %+v, want %+v", rep.Totals, want)
	}

	if len(rep.General) != 12 {
		t.Fatalf("general series len = %d, want 12", len(rep.General))
	}
	jan, mar, may := rep.General[0], rep.General[2], rep.General[4]
	if jan.Total != 0 || jan.PercentCompleted != 0 || jan.Label != "Ene" {
		t.Fatalf("january bucket = %+v", jan)
	}
	if mar.Total != 3 || mar.PercentCompleted != 33.33 || mar.PercentPending != 33.33 || mar.PercentAwaitingMaterial != 33.33 {
		t.Fatalf("march bucket = %+v", mar)
	}
	if may.Total != 1 || may.PercentCompleted != 0 {
		t.Fatalf("may bucket = %+v", may)
	}

	if len(rep.Types) != 2 || rep.Types[0].OrderTypeID != 1 || rep.Types[1].OrderTypeID != 2 {
		t.Fatalf("types = %+v", rep.Types)
	}
	corr := rep.Types[0]
	if corr.OrderTypeName != "Correctivo" || len(corr.Buckets) != 12 {
		t.Fatalf("type series = %s with %d buckets", corr.OrderTypeName, len(corr.Buckets))
	}
	if b := corr.Buckets[2]; b.Count != 2 || b.PercentOfTotal != 66.67 || len(b.TopAssets) != 1 || b.TopAssets[0].AssetID != 10 || b.TopAssets[0].Count != 2 {
		t.Fatalf("correctivo march = %+v", b)
	}
	if b := corr.Buckets[4]; b.Count != 1 || b.PercentOfTotal != 100 || b.TopAssets[0].AssetID != 12 {
		t.Fatalf("correctivo may = %+v", b)
	}
	if b := corr.Buckets[0]; b.Count != 0 || b.PercentOfTotal != 0 || b.TopAssets == nil || len(b.TopAssets) != 0 {
		t.Fatalf("zero-filled bucket = %+v", b)
	}
	if b := rep.Types[1].Buckets[2]; b.Count != 1 || b.PercentOfTotal != 33.33 {
		t.Fatalf("preventivo march = %+v", b)
	}

	ids := []int64{}
	for _, a := range rep.Assets {
		ids = append(ids, a.AssetID)
	}
	if !reflect.DeepEqual(ids, []int64{10, 11, 12}) {
		t.Fatalf("asset order = %v", ids)
	}
	if a := rep.Assets[0]; a.Total != 2 || a.PercentCompleted != 50 || a.PercentPending != 50 || a.AssetName != "Bomba" || !a.Critical {
		t.Fatalf("asset 10 = %+v", a)
	}
}

func TestOrderKPIs_Empty(t *testing.T) {
	rep, err := testEngine().OrderKPIs(nil, Filters{})
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	if rep.General == nil || rep.Types == nil || rep.Assets == nil {
		t.Fatalf("lists must be empty, not nil: %+v", rep)
	}
	if len(rep.General)+len(rep.Types)+len(rep.Assets) != 0 {
		t.Fatalf("lists must be empty: %+v", rep)
	}
	if rep.Totals != (OrderTotals{}) {
		t.Fatalf("totals = %+v", rep.Totals)
	}
	if rep.Granularity != period.Yearly {
		t.Fatalf("granularity = %s", rep.Granularity)
	}
}

func TestOrderKPIs_TopThreeTiesByAssetID(t *testing.T) {
	var recs []OrderRecord
	id := int64(0)
	for asset, n := range map[int64]int{9: 3, 5: 3, 8: 2, 6: 3, 7: 1} {
		for i := 0; i < n; i++ {
			id++
			recs = append(recs, order(id, asset, 1, StateOpen, at(2024, time.March, 1+int(id), 8, 0)))
		}
	}
	rep, err := testEngine().OrderKPIs(recs, Filters{Year: 2024})
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	top := rep.Types[0].Buckets[2].TopAssets
	if len(top) != 3 {
		t.Fatalf("top assets = %+v", top)
	}
	got := []int64{top[0].AssetID, top[1].AssetID, top[2].AssetID}
	if !reflect.DeepEqual(got, []int64{5, 6, 9}) {
		t.Fatalf("top assets = %+v", top)
	}
}

func TestOrderKPIs_DateRangeUsesClock(t *testing.T) {
	recs := []OrderRecord{
		order(1, 1, 1, StateOpen, at(2024, time.January, 3, 8, 0)),
		order(2, 1, 1, StateOpen, at(2024, time.January, 17, 8, 0)),
	}
	f := Filters{DateFrom: tp(at(2024, time.January, 1, 0, 0))}

	near := New(WithClock(ptime.Fixed(at(2024, time.February, 20, 0, 0))))
	rep, err := near.OrderKPIs(recs, f)
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	if rep.Granularity != period.Weekly || len(rep.General) != 3 || rep.General[2].Label != "Semana 3" {
		t.Fatalf("weekly report = %s %+v", rep.Granularity, rep.General)
	}

	far := New(WithClock(ptime.Fixed(at(2025, time.June, 1, 0, 0))))
	rep, err = far.OrderKPIs(recs, f)
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	if rep.Granularity != period.Yearly || len(rep.General) != 1 || rep.General[0].Label != "2024" || rep.General[0].Total != 2 {
		t.Fatalf("yearly report = %s %+v", rep.Granularity, rep.General)
	}
}

func TestOrderKPIs_WeeklyAcrossNewYear(t *testing.T) {
	recs := []OrderRecord{
		order(1, 1, 1, StateClosed, at(2023, time.December, 5, 8, 0)),
		order(2, 1, 1, StateOpen, at(2024, time.January, 10, 8, 0)),
	}
	f := Filters{DateFrom: tp(at(2023, time.December, 1, 0, 0)), DateTo: tp(at(2024, time.January, 31, 0, 0))}
	rep, err := testEngine().OrderKPIs(recs, f)
	if err != nil {
		t.Fatalf("OrderKPIs: %v", err)
	}
	want := []string{
		"Semana 49 del 2023", "Semana 50 del 2023", "Semana 51 del 2023", "Semana 52 del 2023",
		"Semana 1 del 2024", "Semana 2 del 2024",
	}
	got := make([]string, len(rep.General))
	for i, b := range rep.General {
		got[i] = b.Label
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v", got)
	}
	if !rep.MultiYear || rep.General[0].Total != 1 || rep.General[5].Total != 1 || rep.General[3].Total != 0 {
		t.Fatalf("report = %+v", rep.General)
	}
}

func TestOrderKPIs_PercentagesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	states := []StateID{StateOpen, StateInProgress, StateClosed, StateCancelled, StateMaterialRequested, StateMaterialInTransit}
	for round := 0; round < 50; round++ {
		var recs []OrderRecord
		n := 1 + rng.Intn(60)
		for i := 0; i < n; i++ {
			opened := at(2023, time.January, 1, 0, 0).AddDate(0, 0, rng.Intn(700))
			recs = append(recs, order(int64(i), int64(rng.Intn(5)), int64(rng.Intn(3)), states[rng.Intn(len(states))], opened))
		}
		rep, err := testEngine().OrderKPIs(recs, Filters{})
		if err != nil {
			t.Fatalf("OrderKPIs: %v", err)
		}
		check := func(tot OrderTotals) {
			for _, p := range []float64{tot.PercentCompleted, tot.PercentPending, tot.PercentAwaitingMaterial} {
				if p < 0 || p > 100 {
					t.Fatalf("percentage out of range: %+v", tot)
				}
			}
		}
		check(rep.Totals)
		for _, b := range rep.General {
			check(b.OrderTotals)
		}
		for _, a := range rep.Assets {
			check(a.OrderTotals)
		}
		for _, s := range rep.Types {
			if len(s.Buckets) != len(rep.General) {
				t.Fatalf("type series not aligned to the axis")
			}
		}
	}
}

func TestOrderKPIs_Deterministic(t *testing.T) {
	a, _ := testEngine().OrderKPIs(sampleOrders(), Filters{})
	b, _ := testEngine().OrderKPIs(sampleOrders(), Filters{})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical input produced different reports")
	}
}

func TestFilters_Validate(t *testing.T) {
	bad := []Filters{
		{Month: 13},
		{Year: -1},
		{Months: []int{0}},
		{Years: []int{-2024}},
		{DateFrom: tp(at(2024, time.May, 1, 0, 0)), DateTo: tp(at(2024, time.April, 1, 0, 0))},
	}
	for _, f := range bad {
		_, err := testEngine().OrderKPIs(nil, f)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("filters %+v: err = %v, want invalid argument", f, err)
		}
	}
	if err := (Filters{Year: 2024, Month: 12}).Validate(); err != nil {
		t.Fatalf("valid filters rejected: %v", err)
	}
}

func TestFilters_Covers(t *testing.T) {
	f := Filters{Year: 2024, Months: []int{3, 4}, DateTo: tp(at(2024, time.April, 10, 0, 0))}
	cases := map[time.Time]bool{
		at(2024, time.March, 1, 0, 0):  true,
		at(2024, time.April, 11, 0, 0): false,
		at(2024, time.May, 1, 0, 0):    false,
		at(2023, time.March, 1, 0, 0):  false,
	}
	for in, want := range cases {
		if got := f.Covers(in); got != want {
			t.Fatalf("Covers(%s) = %v, want %v", in, got, want)
		}
	}
}

func TestIncidentDowntime(t *testing.T) {
	in := IncidentRecord{DetectedAt: at(2024, 1, 1, 8, 0)}
	if in.Resolved() || in.Downtime() != 0 {
		t.Fatalf("unresolved incident has downtime")
	}
	in.ResolvedAt = tp(at(2024, 1, 1, 11, 30))
	if !in.Resolved() || in.Downtime() != 3*time.Hour+30*time.Minute {
		t.Fatalf("downtime = %v", in.Downtime())
	}
}

func TestWeeklyMonthAtYearEdges(t *testing.T) {
	cases := []struct {
		name   string
		f      Filters
		opened []time.Time
		want   []string
	}{
		{"first january days", Filters{Year: 2021, Month: 1},
			[]time.Time{at(2021, time.January, 2, 8, 0), at(2021, time.January, 15, 8, 0)},
			[]string{"Semana 1", "Semana 2"}},
		{"last december days", Filters{Year: 2024, Month: 12},
			[]time.Time{at(2024, time.December, 2, 8, 0), at(2024, time.December, 31, 8, 0)},
			[]string{"Semana 49", "Semana 50", "Semana 51", "Semana 52"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var recs []OrderRecord
			var incs []IncidentRecord
			for i, o := range c.opened {
				recs = append(recs, order(int64(i+1), 1, 1, StateOpen, o))
				incs = append(incs, incident(int64(i+1), int64(i+1), 1, false, o, o, time.Hour))
			}

			rep, err := testEngine().OrderKPIs(recs, c.f)
			if err != nil {
				t.Fatalf("OrderKPIs: %v", err)
			}
			if rep.Granularity != period.Weekly || rep.MultiYear {
				t.Fatalf("granularity %s multi %v", rep.Granularity, rep.MultiYear)
			}
			got := make([]string, len(rep.General))
			for i, b := range rep.General {
				got[i] = b.Label
				if b.Year != c.f.Year {
					t.Fatalf("bucket %q tagged %d", b.Label, b.Year)
				}
				if i > 0 && b.Index != rep.General[i-1].Index+1 {
					t.Fatalf("weeks out of order: %+v", rep.General)
				}
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("labels = %v, want %v", got, c.want)
			}
			if rep.General[0].Total != 1 || rep.General[len(got)-1].Total != 1 {
				t.Fatalf("edge days on the wrong week: %+v", rep.General)
			}

			rel, err := testEngine().ReliabilityKPIs(incs, c.f)
			if err != nil {
				t.Fatalf("ReliabilityKPIs: %v", err)
			}
			if rel.MultiYear || len(rel.Buckets) != len(c.want) || rel.Totals.Incidents != len(incs) {
				t.Fatalf("reliability = multi %v, %d buckets, %d incidents", rel.MultiYear, len(rel.Buckets), rel.Totals.Incidents)
			}
		})
	}
}
