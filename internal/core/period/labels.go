package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/es"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// monthLabels holds the 3-letter Spanish month abbreviations, index 1..12
var monthLabels = buildMonthLabels()

func buildMonthLabels() [13]string {
	var out [13]string
	loc := es.New()
	title := cases.Title(language.Spanish)
	for m := time.January; m <= time.December; m++ {
		abbr := strings.TrimSuffix(strings.TrimSpace(loc.MonthAbbreviated(m)), ".")
		r := []rune(abbr)
		if len(r) > 3 {
			r = r[:3]
		}
		out[m] = title.String(string(r))
	}
	return out
}

// MonthLabel returns the localized abbreviation for month 1..12, or the number when out of range
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(month)
	}
	return monthLabels[month]
}

// Label renders the human label for p. The "del {year}" suffix only appears in multi-year views
func Label(p Period, g Granularity, multiYear bool) string {
	var base string
	switch g {
	case Weekly:
		base = fmt.Sprintf("Semana %d", p.Index)
	case Monthly:
		base = MonthLabel(p.Index)
	default:
		return strconv.Itoa(p.Year)
	}
	if multiYear {
		return fmt.Sprintf("%s del %d", base, p.Year)
	}
	return base
}
