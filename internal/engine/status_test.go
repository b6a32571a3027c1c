package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailyStatusEmptyDayIsVacuouslyComplete(t *testing.T) {
	status := BuildDailyStatus(DayInputs{})

	assert.True(t, status.IntentionMorning)
	assert.True(t, status.IntentionEvening)
	assert.True(t, status.CriticalTasks)
	assert.False(t, status.Workout)
	assert.False(t, status.Reading)
	assert.False(t, status.PrayerMeditation)
}

func TestBuildDailyStatus(t *testing.T) {
	tests := []struct {
		name string
		in   DayInputs
		want DailyStatus
	}{
		{
			name: "partial morning blocks intention",
			in:   DayInputs{MorningRoutines: 3, MorningDone: 2},
			want: DailyStatus{IntentionMorning: false, IntentionEvening: true, CriticalTasks: true},
		},
		{
			name: "sessions flip on row existence",
			in:   DayInputs{HasWorkout: true, HasMeditation: true},
			want: DailyStatus{IntentionMorning: true, IntentionEvening: true, CriticalTasks: true, Workout: true, PrayerMeditation: true},
		},
		{
			name: "all configured and all done",
			in: DayInputs{
				MorningRoutines: 2, MorningDone: 2,
				EveningRoutines: 1, EveningDone: 1,
				TasksTotal: 4, TasksDone: 4,
				HasWorkout: true, HasReading: true, HasMeditation: true,
			},
			want: DailyStatus{true, true, true, true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDailyStatus(tt.in))
		})
	}
}

func TestCompletedCountFoldsIntentions(t *testing.T) {
	// morning and evening only score as one combined component, and only together
	assert.Equal(t, 0, DailyStatus{}.CompletedCount())
	assert.Equal(t, 0, DailyStatus{IntentionMorning: true}.CompletedCount())
	assert.Equal(t, 1, DailyStatus{IntentionMorning: true, IntentionEvening: true}.CompletedCount())
	assert.Equal(t, 0, DailyStatus{IntentionMorning: true, IntentionEvening: false}.CompletedCount())
	assert.Equal(t, 5, DailyStatus{true, true, true, true, true, true}.CompletedCount())
	assert.Equal(t, 3, DailyStatus{IntentionMorning: true, IntentionEvening: true, Workout: true, Reading: true}.CompletedCount())
}

func TestFetchFailureDegradesToAllFalse(t *testing.T) {
	// a broken fetch must render the day incomplete, never vacuously complete
	in := DayInputs{FetchFailed: true}

	status := BuildDailyStatus(in)
	assert.False(t, status.IntentionMorning)
	assert.False(t, status.IntentionEvening)
	assert.False(t, status.CriticalTasks)
	assert.False(t, status.Workout)
	assert.False(t, status.Reading)
	assert.False(t, status.PrayerMeditation)
	assert.Equal(t, 0, status.CompletedCount())

	got := CheckEligibility(in)
	assert.False(t, got.HasAnyConfigured)
	assert.False(t, got.AllComplete)
}

func TestFetchFailureOverridesPartialResults(t *testing.T) {
	// counts that made it through before the failure must not leak into the view
	in := DayInputs{
		MorningRoutines: 2, MorningDone: 2,
		TasksTotal: 1, TasksDone: 1,
		HasWorkout:  true,
		FetchFailed: true,
	}

	assert.Equal(t, DailyStatus{}, BuildDailyStatus(in))
	assert.Equal(t, Eligibility{}, CheckEligibility(in))
}

func TestCheckEligibilityBlankDayNotWinnable(t *testing.T) {
	got := CheckEligibility(DayInputs{})

	assert.False(t, got.HasAnyConfigured)
	assert.False(t, got.AllComplete, "a day with nothing configured must never be winnable")
}

func TestCheckEligibilitySessionsOutsideGate(t *testing.T) {
	// one morning routine done, one evening routine done, one task done, zero
	// sessions logged: the gate passes because sessions never enter it.
	in := DayInputs{
		MorningRoutines: 1, MorningDone: 1,
		EveningRoutines: 1, EveningDone: 1,
		TasksTotal: 1, TasksDone: 1,
	}

	status := BuildDailyStatus(in)
	assert.True(t, status.IntentionMorning)
	assert.True(t, status.IntentionEvening)
	assert.True(t, status.CriticalTasks)
	assert.Equal(t, 2, status.CompletedCount())

	got := CheckEligibility(in)
	assert.True(t, got.HasAnyConfigured)
	assert.True(t, got.AllComplete)
}

func TestCheckEligibilityIncompleteCategoryBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   DayInputs
	}{
		{"morning behind", DayInputs{MorningRoutines: 2, MorningDone: 1, TasksTotal: 1, TasksDone: 1}},
		{"evening behind", DayInputs{EveningRoutines: 1, EveningDone: 0}},
		{"tasks behind", DayInputs{MorningRoutines: 1, MorningDone: 1, TasksTotal: 3, TasksDone: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckEligibility(tt.in)
			assert.True(t, got.HasAnyConfigured)
			assert.False(t, got.AllComplete)
		})
	}
}

func TestClassifyDay(t *testing.T) {
	today := day(2024, time.June, 15)
	yesterday := day(2024, time.June, 14)
	tomorrow := day(2024, time.June, 16)

	assert.Equal(t, ClassWon, ClassifyDay(true, 0, yesterday, today))
	assert.Equal(t, ClassWon, ClassifyDay(true, 5, today, today), "win record alone decides won")
	assert.Equal(t, ClassPartial, ClassifyDay(false, 3, yesterday, today))
	assert.Equal(t, ClassPartial, ClassifyDay(false, 5, yesterday, today), "full completion without a win record is still only partial")
	assert.Equal(t, ClassMissed, ClassifyDay(false, 0, yesterday, today))
	assert.Equal(t, ClassNone, ClassifyDay(false, 0, today, today))
	assert.Equal(t, ClassNone, ClassifyDay(false, 0, tomorrow, today))
}
