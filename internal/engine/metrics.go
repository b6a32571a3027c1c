package engine

import (
	"math"
	"time"
)

// WeekBounds returns the current week window: Sunday 00:00 local through the
// following Sunday, exclusive.
func WeekBounds(today time.Time) (start, end time.Time) {
	start = today.AddDate(0, 0, -int(today.Weekday()))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return start, start.AddDate(0, 0, 7)
}

// MonthElapsed returns the first of the current month and the number of
// elapsed days from the 1st through today inclusive.
func MonthElapsed(today time.Time) (first time.Time, elapsedDays int) {
	first = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	return first, today.Day()
}

// ConsistencyPercent is the monthly ratio of days with at least one routine
// completion to elapsed days, rounded to the nearest integer percent and
// clamped to [0, 100]. Zero elapsed days yields 0, not a division error.
func ConsistencyPercent(daysWithCompletion, elapsedDays int) int {
	if elapsedDays <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(daysWithCompletion) / float64(elapsedDays)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
