package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"maintkpi/internal/core/kpi"
	"maintkpi/internal/platform/store"
)

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

// Scan copies values by pointer type, the way the drivers do for these columns
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = row[i].(int64)
		case *string:
			*p = row[i].(string)
		case *bool:
			*p = row[i].(bool)
		case *time.Time:
			*p = row[i].(time.Time)
		case **time.Time:
			if v, ok := row[i].(time.Time); ok {
				*p = &v
			}
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeReader struct {
	sql  string
	args []any
	rows [][]any
	err  error
}

func (f *fakeReader) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

var local = time.FixedZone("UTC-3", -3*3600)

func TestPGOrderRecordsFiltersAndScan(t *testing.T) {
	opened := time.Date(2024, 3, 4, 7, 0, 0, 0, local)
	fr := &fakeReader{rows: [][]any{
		{int64(10), int64(2), "Bomba", int64(1), "Correctivo", int64(3), opened, true},
	}}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := kpi.Filters{Year: 2024, Months: []int{3, 4}, CostCenterID: 7, AssetID: 2, DateFrom: &from}

	recs, err := NewPG().Bind(fr).OrderRecords(context.Background(), f)
	if err != nil {
		t.Fatalf("OrderRecords: %v", err)
	}

	for _, want := range []string{
		"extract(year from o.opened_at)::int = $1",
		"extract(month from o.opened_at)::int = any($2)",
		"a.cost_center_id = $3",
		"o.asset_id = $4",
		"o.opened_at >= $5",
		"order by o.opened_at, o.id",
	} {
		if !strings.Contains(fr.sql, want) {
			t.Fatalf("sql lacks %q:\n%s", want, fr.sql)
		}
	}
	if len(fr.args) != 5 || fr.args[0] != 2024 || fr.args[2] != int64(7) {
		t.Fatalf("args = %#v", fr.args)
	}

	if len(recs) != 1 {
		t.Fatalf("records = %d", len(recs))
	}
	r := recs[0]
	if r.StateID != kpi.StateClosed || r.OrderTypeName != "Correctivo" || !r.Critical {
		t.Fatalf("record = %+v", r)
	}
	if r.OpenedAt.Location() != time.UTC || !r.OpenedAt.Equal(opened) {
		t.Fatalf("opened_at not normalized to UTC: %v", r.OpenedAt)
	}
}

func TestPGOrderRecordsUnfiltered(t *testing.T) {
	fr := &fakeReader{}
	recs, err := NewPG().Bind(fr).OrderRecords(context.Background(), kpi.Filters{})
	if err != nil {
		t.Fatalf("OrderRecords: %v", err)
	}
	if strings.Contains(fr.sql, "where") || len(fr.args) != 0 {
		t.Fatalf("unexpected where clause:\n%s %v", fr.sql, fr.args)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("want empty non nil slice, got %#v", recs)
	}
}

func TestIncidentRecordsRestrictToClosedOrders(t *testing.T) {
	detected := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	resolved := detected.Add(5 * time.Hour)
	opened := detected.Add(-time.Hour)

	cases := []struct {
		name  string
		bind  func(*fakeReader) Repo
		want  []string
		nArgs int
	}{
		{
			name:  "pg",
			bind:  func(fr *fakeReader) Repo { return NewPG().Bind(fr) },
			want:  []string{"o.state_id = $1", "a.criticality_id = $2", "o.opened_at <= $3"},
			nArgs: 3,
		},
		{
			name:  "ch",
			bind:  func(fr *fakeReader) Repo { return NewCH().Bind(fr) },
			want:  []string{"order_state_id = ?", "criticality_id = ?", "order_opened_at <= ?", "from kpi_incidents"},
			nArgs: 3,
		},
	}
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fr := &fakeReader{rows: [][]any{
				{int64(1), int64(10), int64(2), "Bomba", false, detected, resolved, opened},
				{int64(2), int64(11), int64(2), "Bomba", false, detected, nil, opened},
			}}
			recs, err := c.bind(fr).IncidentRecords(context.Background(), kpi.Filters{CriticalityID: 1, DateTo: &to})
			if err != nil {
				t.Fatalf("IncidentRecords: %v", err)
			}
			for _, w := range c.want {
				if !strings.Contains(fr.sql, w) {
					t.Fatalf("sql lacks %q:\n%s", w, fr.sql)
				}
			}
			if len(fr.args) != c.nArgs || fr.args[0] != int64(kpi.StateClosed) {
				t.Fatalf("args = %#v", fr.args)
			}
			if len(recs) != 2 {
				t.Fatalf("records = %d", len(recs))
			}
			if recs[0].Downtime() != 5*time.Hour || recs[1].Resolved() {
				t.Fatalf("resolution not scanned: %+v", recs)
			}
		})
	}
}

func TestCHYearsUseHas(t *testing.T) {
	fr := &fakeReader{}
	_, err := NewCH().Bind(fr).OrderRecords(context.Background(), kpi.Filters{Years: []int{2022, 2023}, Month: 2})
	if err != nil {
		t.Fatalf("OrderRecords: %v", err)
	}
	for _, w := range []string{"toMonth(opened_at) = ?", "has(?, toYear(opened_at))", "from kpi_orders"} {
		if !strings.Contains(fr.sql, w) {
			t.Fatalf("sql lacks %q:\n%s", w, fr.sql)
		}
	}
	if len(fr.args) != 2 {
		t.Fatalf("args = %#v", fr.args)
	}
}

func TestUpstreamErrorReturnedUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewPG().Bind(&fakeReader{err: boom}).OrderRecords(context.Background(), kpi.Filters{})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
