package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutDay is the local-date key format used across the cache and the
	// day index.
	LayoutDay = "2006-01-02"
)

// DayKey renders t as a local-timezone YYYY-MM-DD key.
func DayKey(t time.Time) string {
	return t.Local().Format(LayoutDay)
}

// TruncateToDay drops the time-of-day portion of t in local time.
func TruncateToDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// ParseDay parses a YYYY-MM-DD string in local time.
func ParseDay(v string) (time.Time, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.ParseInLocation(LayoutDay, trimmed, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", trimmed, err)
	}
	return t, nil
}

// MonthRange returns the first day of t's month and the first day of the next
// month, matching the visible window a month view requests.
func MonthRange(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	return start, start.AddDate(0, 1, 0)
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	local := t.Local()
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	return first.AddDate(0, 1, -1).Day()
}
