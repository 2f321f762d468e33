// Package timeutil holds minute-of-day arithmetic shared by the schedule
// engine. All provider times are "HH:MM" strings with minute precision.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses a "HH:MM" string into minutes since midnight.
// Anything that is not exactly two numeric components separated by a
// colon is a parse failure.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	return Minutes(h, m), nil
}

// Minutes converts an hour and minute pair to minutes since midnight.
func Minutes(h, m int) int {
	return h*60 + m
}

// Contains reports whether now falls inside the half-open interval
// [from, to). A shutdown starting exactly now is active; one ending
// exactly now is not.
func Contains(now, from, to int) bool {
	return now >= from && now < to
}
