package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	// Wednesday 2024-06-12 belongs to the week starting Sunday 2024-06-09
	start, end := WeekBounds(day(2024, time.June, 12))
	assert.True(t, start.Equal(day(2024, time.June, 9)))
	assert.True(t, end.Equal(day(2024, time.June, 16)))

	// a Sunday starts its own week
	start, end = WeekBounds(day(2024, time.June, 9))
	assert.True(t, start.Equal(day(2024, time.June, 9)))
	assert.True(t, end.Equal(day(2024, time.June, 16)))

	// a Saturday closes the week
	start, _ = WeekBounds(day(2024, time.June, 15))
	assert.True(t, start.Equal(day(2024, time.June, 9)))
}

func TestMonthElapsed(t *testing.T) {
	first, elapsed := MonthElapsed(day(2024, time.June, 15))
	assert.True(t, first.Equal(day(2024, time.June, 1)))
	assert.Equal(t, 15, elapsed)

	first, elapsed = MonthElapsed(day(2024, time.June, 1))
	assert.True(t, first.Equal(day(2024, time.June, 1)))
	assert.Equal(t, 1, elapsed)
}

func TestConsistencyPercent(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		elapsed int
		want    int
	}{
		{"no activity", 0, 10, 0},
		{"every day", 10, 10, 100},
		{"first of month with completion", 1, 1, 100},
		{"rounds to nearest", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"zero elapsed yields zero", 5, 0, 0},
		{"clamped above", 12, 10, 100},
		{"clamped below", -1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsistencyPercent(tt.days, tt.elapsed)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}
