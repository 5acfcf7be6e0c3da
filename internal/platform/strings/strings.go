// Package strings holds the few string and slice helpers the transports share
package strings

import (
	"fmt"
	"strconv"
	std "strings"
)

// IfEmpty returns def when in is empty
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path like "kpi/" to "/kpi" and panics on the root
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// ParseInts parses a comma separated list like "2022, 2023". Blank items are skipped
func ParseInts(s string) ([]int, error) {
	var out []int
	for part := range std.SplitSeq(s, ",") {
		part = std.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}
