package repo

import (
	"fmt"
	"strconv"
	"strings"

	"maintkpi/internal/core/kpi"
)

// dialect is the SQL that differs between postgres and clickhouse
type dialect struct {
	param func(n int) string
	year  string // format over a timestamp column
	month string
	// in tests a column against an array parameter
	in func(expr, param string) string
}

var postgres = dialect{
	param: func(n int) string { return "$" + strconv.Itoa(n) },
	year:  "extract(year from %s)::int",
	month: "extract(month from %s)::int",
	in:    func(expr, param string) string { return expr + " = any(" + param + ")" },
}

var clickhouse = dialect{
	param: func(int) string { return "?" },
	year:  "toYear(%s)",
	month: "toMonth(%s)",
	in:    func(expr, param string) string { return "has(" + param + ", " + expr + ")" },
}

// columns names what the filters apply to in one query
type columns struct {
	opened      string
	asset       string
	costCenter  string
	criticality string
	state       string
}

// where accumulates conditions and their positional args
type where struct {
	d     dialect
	conds []string
	args  []any
}

func newWhere(d dialect) *where { return &where{d: d} }

// add appends cond, whose single %s is replaced by the next parameter
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, w.d.param(len(w.args))))
}

// filters adds a condition per non zero filter
func (w *where) filters(c columns, f kpi.Filters) *where {
	year := fmt.Sprintf(w.d.year, c.opened)
	month := fmt.Sprintf(w.d.month, c.opened)
	if f.Year != 0 {
		w.add(year+" = %s", f.Year)
	}
	if f.Month != 0 {
		w.add(month+" = %s", f.Month)
	}
	if len(f.Years) > 0 {
		w.add(w.d.in(year, "%s"), f.Years)
	}
	if len(f.Months) > 0 {
		w.add(w.d.in(month, "%s"), f.Months)
	}
	if f.CostCenterID != 0 {
		w.add(c.costCenter+" = %s", f.CostCenterID)
	}
	if f.CriticalityID != 0 {
		w.add(c.criticality+" = %s", f.CriticalityID)
	}
	if f.AssetID != 0 {
		w.add(c.asset+" = %s", f.AssetID)
	}
	if f.DateFrom != nil {
		w.add(c.opened+" >= %s", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add(c.opened+" <= %s", *f.DateTo)
	}
	return w
}

func render(tmpl string, w *where) string { return fmt.Sprintf(tmpl, w.sql()) }

// sql renders the WHERE clause, empty when there is no condition
func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "where " + strings.Join(w.conds, "\n  and ")
}
