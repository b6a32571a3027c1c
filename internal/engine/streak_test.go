package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name        string
		wins        map[string]struct{}
		today       time.Time
		wantCurrent int
		wantBest    int
	}{
		{
			name:        "unbroken run through today",
			wins:        keySet("2024-01-01", "2024-01-02", "2024-01-03"),
			today:       day(2024, time.January, 3),
			wantCurrent: 3,
			wantBest:    3,
		},
		{
			name:        "streak broken before today yields zero current",
			wins:        keySet("2024-01-01", "2024-01-02"),
			today:       day(2024, time.January, 4),
			wantCurrent: 0,
			wantBest:    2,
		},
		{
			name:        "empty set",
			wins:        keySet(),
			today:       day(2024, time.January, 3),
			wantCurrent: 0,
			wantBest:    0,
		},
		{
			name:        "best kept from earlier run",
			wins:        keySet("2024-01-01", "2024-01-02", "2024-01-05"),
			today:       day(2024, time.January, 5),
			wantCurrent: 1,
			wantBest:    2,
		},
		{
			name:        "only today",
			wins:        keySet("2024-01-05"),
			today:       day(2024, time.January, 5),
			wantCurrent: 1,
			wantBest:    1,
		},
		{
			name:        "run ending yesterday",
			wins:        keySet("2024-01-02", "2024-01-03", "2024-01-04"),
			today:       day(2024, time.January, 5),
			wantCurrent: 0,
			wantBest:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.wins, tt.today, 365)
			assert.Equal(t, tt.wantCurrent, got.Current, "current")
			assert.Equal(t, tt.wantBest, got.Best, "best")
			assert.GreaterOrEqual(t, got.Best, got.Current, "best must never trail current")
		})
	}
}

func TestComputeStreakWindowClipsOldWins(t *testing.T) {
	// wins older than the window must not count toward best
	wins := keySet("2023-01-01", "2023-01-02", "2024-01-05")
	got := ComputeStreak(wins, day(2024, time.January, 5), 30)

	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 1, got.Best)
}

func TestComputeStreakDefaultsWindow(t *testing.T) {
	wins := keySet("2024-01-05")
	got := ComputeStreak(wins, day(2024, time.January, 5), 0)

	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 1, got.Best)
}
