// Package reliability holds the pure maintenance reliability formulas.
// Every division is guarded; none of these functions can produce NaN or Inf
package reliability

import (
	"math"

	"maintkpi/internal/core/period"
)

// Hours is the fixed operating-hour budget of one period for each asset class
type Hours struct {
	Critical    float64
	NonCritical float64
}

// operating-hour constants per granularity
var hours = map[period.Granularity]Hours{
	period.Weekly:  {Critical: 168, NonCritical: 80},
	period.Monthly: {Critical: 720, NonCritical: 320},
	period.Yearly:  {Critical: 8760, NonCritical: 3840},
}

// HoursFor returns the operating-hour constants for g; unknown granularities get the zero value
func HoursFor(g period.Granularity) Hours { return hours[g] }

// PeriodDuration is the horizon used by Reliability. It is the non-critical budget for every asset
func PeriodDuration(g period.Granularity) float64 { return hours[g].NonCritical }

// OperatingTime is criticalAssets*critical + nonCriticalAssets*nonCritical for g
func OperatingTime(g period.Granularity, criticalAssets, nonCriticalAssets int) float64 {
	h := hours[g]
	return float64(criticalAssets)*h.Critical + float64(nonCriticalAssets)*h.NonCritical
}

// Full is the value reported for Reliability and Availability when nothing failed
const Full = 100.0

// Floor keeps a reported Reliability strictly above zero after rounding
const Floor = 0.01

// MTBF is round((operatingTime - downtime) / orders). Zero orders yields 0
func MTBF(operatingTime, downtime float64, orders int) float64 {
	if orders <= 0 {
		return 0
	}
	return math.Round((operatingTime - downtime) / float64(orders))
}

// MTTR is round(downtime / incidents). Zero incidents yields 0
func MTTR(downtime float64, incidents int) float64 {
	if incidents <= 0 {
		return 0
	}
	return math.Round(downtime / float64(incidents))
}

// Availability is MTBF / (MTBF + MTTR) * 100 with two decimals, clamped to [0, 100].
// Both inputs at zero is 100
func Availability(mtbf, mttr float64) float64 {
	if mtbf == 0 && mttr == 0 {
		return Full
	}
	den := mtbf + mttr
	if den <= 0 {
		return 0
	}
	return clamp(Round2(mtbf/den*100), 0, Full)
}

// Reliability is 100 * e^(-duration/MTBF) with two decimals, in (0, 100].
// A non-positive MTBF means failures consumed the whole budget and yields Floor
func Reliability(mtbf, duration float64) float64 {
	if mtbf <= 0 {
		return Floor
	}
	if duration <= 0 {
		return Full
	}
	return clamp(Round2(Full*math.Exp(-duration/mtbf)), Floor, Full)
}

// DowntimeHours is resolved - detected in hours, rounded to the hour. Negative spans count as 0
func DowntimeHours(seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Round(seconds / 3600)
}

// Percent is part/total*100 with two decimals; 0 when total is 0
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Mean is the arithmetic mean of vs, 0 for no values
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var s float64
	for _, v := range vs {
		s += v
	}
	return s / float64(len(vs))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
