package datekey

import (
	"fmt"
	"time"
)

// Layout is the canonical calendar-day key format used across the API and
// the database (win_date, routine_completions.date, day_tasks.task_date).
const Layout = "2006-01-02"

// ToKey formats a date as its calendar-day key. The caller is expected to
// pass a date already in the calendar it cares about (local wall clock for
// "today", DB dates as scanned); no timezone conversion happens here so a
// stored date never shifts across midnight.
func ToKey(t time.Time) string {
	return t.Format(Layout)
}

// Parse reconstructs the date for a key at midnight local time.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// Today returns the local wall-clock date truncated to midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// TodayKey returns the key for the current local calendar day.
func TodayKey() string {
	return ToKey(Today())
}
