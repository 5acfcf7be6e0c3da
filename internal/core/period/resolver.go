package period

import "time"

// Window is the loose filter set the granularity is inferred from
// zero values mean "not given"
type Window struct {
	Year  int
	Month int
	From  *time.Time
	To    *time.Time
}

// Resolution is the outcome of Resolve
type Resolution struct {
	Granularity Granularity
	// AllMonths asks the axis for every month of the single year in view
	AllMonths bool
}

// month-span thresholds for the date range heuristic
const (
	weeklyMaxMonths  = 3
	monthlyMaxMonths = 12
)

// Resolve picks the report granularity.
// A date range wins over year/month: the missing start defaults to earliest (the first record's
// opening) and the missing end defaults to today. Without a range, year+month is weekly,
// year alone is monthly over all twelve months, and nothing is yearly
func Resolve(w Window, earliest, today time.Time) Resolution {
	if w.From != nil || w.To != nil {
		to := today
		if w.To != nil {
			to = *w.To
		}
		from := earliest
		if w.From != nil {
			from = *w.From
		}
		if from.IsZero() {
			from = to
		}
		span := MonthSpan(from, to)
		switch {
		case span <= weeklyMaxMonths:
			return Resolution{Granularity: Weekly}
		case span <= monthlyMaxMonths:
			return Resolution{Granularity: Monthly}
		default:
			return Resolution{Granularity: Yearly}
		}
	}

	switch {
	case w.Year != 0 && w.Month != 0:
		return Resolution{Granularity: Weekly}
	case w.Year != 0:
		return Resolution{Granularity: Monthly, AllMonths: true}
	default:
		return Resolution{Granularity: Yearly}
	}
}

// MonthSpan is yearsDiff*12 + monthsDiff between from and to, ignoring days
func MonthSpan(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
