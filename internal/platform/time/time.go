// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Clock is the seam for reading "now" so callers stay deterministic in tests
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

// Now calls f
func (f ClockFunc) Now() time.Time { return f() }

// System is the wall clock in UTC
var System Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// Fixed returns a clock frozen at t
func Fixed(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

// Today truncates the clock reading to midnight UTC
func Today(c Clock) time.Time {
	if c == nil {
		c = System
	}
	n := c.Now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
