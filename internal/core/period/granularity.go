// Package period resolves reporting granularity and builds the gap-free period axis
// that every KPI report is aligned to
package period

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the bucket size of a report
type Granularity uint8

const (
	// Weekly buckets by Monday-start week, numbered within the calendar year (see Of)
	Weekly Granularity = iota + 1
	// Monthly buckets by calendar month
	Monthly
	// Yearly buckets by calendar year
	Yearly
)

// String implements fmt.Stringer
func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Valid reports whether g is one of the closed set
func (g Granularity) Valid() bool { return g >= Weekly && g <= Yearly }

// MarshalText encodes the granularity as its lowercase name
func (g Granularity) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("period: invalid granularity %d", g)
	}
	return []byte(g.String()), nil
}

// UnmarshalText parses weekly, monthly or yearly (case insensitive)
func (g *Granularity) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "weekly":
		*g = Weekly
	case "monthly":
		*g = Monthly
	case "yearly":
		*g = Yearly
	default:
		return fmt.Errorf("period: unknown granularity %q", string(b))
	}
	return nil
}

// Period is a (year, index) pair. Year is always the calendar year.
// Index is the week (1..PeriodsIn), the month (1..12) or the year itself
type Period struct {
	Year  int `json:"year"`
	Index int `json:"index"`
}

// Before reports whether p sorts strictly before o
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Index < o.Index
}

// Of returns the period t falls in under g.
// Weeks are ISO weeks kept inside the calendar year: the days of Jan 1..3 that ISO puts in the
// previous year's last week count as week 1, and the days of Dec 29..31 that ISO puts in
// next year's week 1 count as the year's last week. Week 1 always holds Jan 1
func Of(t time.Time, g Granularity) Period {
	t = t.UTC()
	switch g {
	case Weekly:
		y, w := t.ISOWeek()
		switch {
		case y < t.Year():
			w = 1
		case y > t.Year():
			w = PeriodsIn(t.Year(), Weekly)
		}
		return Period{Year: t.Year(), Index: w}
	case Monthly:
		return Period{Year: t.Year(), Index: int(t.Month())}
	default:
		return Period{Year: t.Year(), Index: t.Year()}
	}
}

// PeriodsIn returns how many periods year contains under g (52 or 53 weeks, 12 months, 1 year)
func PeriodsIn(year int, g Granularity) int {
	switch g {
	case Weekly:
		// Dec 28 always falls in the last ISO week of its year
		_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
		return w
	case Monthly:
		return 12
	default:
		return 1
	}
}
