package engine

import (
	"time"

	"winDayAPI/internal/datekey"
)

// DefaultStreakWindowDays is the trailing window the streak walk covers when
// no override is configured.
const DefaultStreakWindowDays = 365

// Streak holds the current and best consecutive-day win runs.
type Streak struct {
	Current int `json:"current_streak"`
	Best    int `json:"best_streak"`
}

// ComputeStreak walks a trailing window of windowDays ending at today,
// oldest to newest. The running counter increments on days present in
// winKeys and resets on gaps after folding into best. Current is the run
// ending at today itself, so a streak broken yesterday yields 0 even when
// best is large.
func ComputeStreak(winKeys map[string]struct{}, today time.Time, windowDays int) Streak {
	if windowDays <= 0 {
		windowDays = DefaultStreakWindowDays
	}

	var run, best int
	start := today.AddDate(0, 0, -(windowDays - 1))
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		if _, won := winKeys[datekey.ToKey(d)]; won {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}

	return Streak{Current: run, Best: best}
}
