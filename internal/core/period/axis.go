package period

import "sort"

// Entry is one labelled slot on the axis
type Entry struct {
	Period
	Label string `json:"label"`
}

// Axis is the ordered, gap-free list of periods a report covers
type Axis struct {
	Granularity Granularity `json:"granularity"`
	MultiYear   bool        `json:"multi_year"`
	Entries     []Entry     `json:"entries"`
}

// Len returns the number of entries
func (a Axis) Len() int { return len(a.Entries) }

// Periods returns the bare periods in axis order
func (a Axis) Periods() []Period {
	out := make([]Period, len(a.Entries))
	for i, e := range a.Entries {
		out[i] = e.Period
	}
	return out
}

// ForYear re-tags an index-only axis (see AxisBuilder.Shared) with year y
func (a Axis) ForYear(y int) Axis {
	out := Axis{Granularity: a.Granularity, Entries: make([]Entry, len(a.Entries))}
	for i, e := range a.Entries {
		e.Year = y
		if a.Granularity == Yearly {
			e.Index = y
		}
		e.Label = Label(e.Period, a.Granularity, false)
		out.Entries[i] = e
	}
	return out
}

// AxisBuilder stitches observed periods into the canonical axis.
// It is the single place the cross-year and multi-year rules live
type AxisBuilder struct {
	Granularity Granularity
	// AllMonths widens a single-year monthly axis to January..December
	AllMonths bool
}

// NewAxisBuilder builds from a resolver outcome
func NewAxisBuilder(r Resolution) AxisBuilder {
	return AxisBuilder{Granularity: r.Granularity, AllMonths: r.AllMonths}
}

type yearSpan struct{ min, max int }

// Build returns the axis covering observed.
// One year: min..max of that year. Several years: first year from its min to its last period,
// middle years in full, last year from 1 to its max. Yearly: every year from first to last
func (b AxisBuilder) Build(observed []Period) Axis {
	ax := Axis{Granularity: b.Granularity, Entries: []Entry{}}
	if len(observed) == 0 {
		return ax
	}

	spans := map[int]*yearSpan{}
	years := make([]int, 0, 2)
	for _, p := range observed {
		s, ok := spans[p.Year]
		if !ok {
			spans[p.Year] = &yearSpan{min: p.Index, max: p.Index}
			years = append(years, p.Year)
			continue
		}
		if p.Index < s.min {
			s.min = p.Index
		}
		if p.Index > s.max {
			s.max = p.Index
		}
	}
	sort.Ints(years)
	first, last := years[0], years[len(years)-1]
	ax.MultiYear = len(years) > 1

	add := func(y, from, to int) {
		for i := from; i <= to; i++ {
			p := Period{Year: y, Index: i}
			ax.Entries = append(ax.Entries, Entry{Period: p, Label: Label(p, b.Granularity, ax.MultiYear)})
		}
	}

	if b.Granularity == Yearly {
		for y := first; y <= last; y++ {
			add(y, y, y)
		}
		return ax
	}

	if first == last {
		s := spans[first]
		if b.Granularity == Monthly && b.AllMonths {
			add(first, 1, 12)
			return ax
		}
		add(first, s.min, s.max)
		return ax
	}

	add(first, spans[first].min, PeriodsIn(first, b.Granularity))
	for y := first + 1; y < last; y++ {
		add(y, 1, PeriodsIn(y, b.Granularity))
	}
	add(last, 1, spans[last].max)
	return ax
}

// Shared returns the index-only axis used by comparative studies, where every selected year is
// processed on its own. Monthly covers 1..12. Weekly covers the min..max week index seen in any
// year; week indices never leave their calendar year (see Of), so a study of January only spans
// the first four or five weeks and a study of December only the last ones.
// Entries carry Year 0 until ForYear re-tags them
func (b AxisBuilder) Shared(observed []Period) Axis {
	ax := Axis{Granularity: b.Granularity, Entries: []Entry{}}
	if len(observed) == 0 {
		return ax
	}
	if b.Granularity == Yearly {
		return b.Build(observed)
	}
	lo, hi := observed[0].Index, observed[0].Index
	for _, p := range observed[1:] {
		if p.Index < lo {
			lo = p.Index
		}
		if p.Index > hi {
			hi = p.Index
		}
	}
	if b.Granularity == Monthly {
		lo, hi = 1, 12
	}
	for i := lo; i <= hi; i++ {
		p := Period{Index: i}
		ax.Entries = append(ax.Entries, Entry{Period: p, Label: Label(p, b.Granularity, false)})
	}
	return ax
}
