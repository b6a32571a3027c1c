package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"winDayAPI/internal/bus"
	"winDayAPI/internal/engine"
)

func TestStreakCacheExpiresAtMidnight(t *testing.T) {
	s := NewWinService(nil, bus.New(), 30)

	streak := engine.Streak{Current: 3, Best: 5}
	s.storeStreak("clerk_1", "2024-01-05", streak)

	got, ok := s.cachedStreakFor("clerk_1", "2024-01-05")
	assert.True(t, ok)
	assert.Equal(t, streak, got)

	// next morning the window has shifted, yesterday's entry is stale
	_, ok = s.cachedStreakFor("clerk_1", "2024-01-06")
	assert.False(t, ok)
}

func TestStreakCacheInvalidatedOnPublish(t *testing.T) {
	changeBus := bus.New()
	s := NewWinService(nil, changeBus, 30)

	s.storeStreak("clerk_1", "2024-01-05", engine.Streak{Current: 1, Best: 1})
	changeBus.Publish()

	_, ok := s.cachedStreakFor("clerk_1", "2024-01-05")
	assert.False(t, ok)
}

func TestStreakCacheIsPerUser(t *testing.T) {
	s := NewWinService(nil, bus.New(), 30)

	s.storeStreak("clerk_1", "2024-01-05", engine.Streak{Current: 2, Best: 2})

	_, ok := s.cachedStreakFor("clerk_2", "2024-01-05")
	assert.False(t, ok)
}
