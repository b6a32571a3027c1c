package engine

import "time"

// DayInputs is the raw per-date material the aggregator fetches from the
// store: configured/completed counts for the two routine categories, the
// day's task tally, and whether at least one timed session of each kind
// exists. Everything derived for a date comes out of this one struct.
//
// FetchFailed marks a date whose underlying reads errored. It must be set
// explicitly: zero counts alone would trip the vacuous-truth rule and render
// a broken fetch as a complete day instead of an incomplete one.
type DayInputs struct {
	MorningRoutines int
	MorningDone     int
	EveningRoutines int
	EveningDone     int
	TasksTotal      int
	TasksDone       int
	HasWorkout      bool
	HasReading      bool
	HasMeditation   bool
	FetchFailed     bool
}

// DailyStatus is the six-component completion snapshot for one date.
type DailyStatus struct {
	IntentionMorning bool `json:"intention_morning"`
	IntentionEvening bool `json:"intention_evening"`
	CriticalTasks    bool `json:"critical_tasks"`
	Workout          bool `json:"workout"`
	Reading          bool `json:"reading"`
	PrayerMeditation bool `json:"prayer_meditation"`
}

// BuildDailyStatus derives the completion snapshot. A category with zero
// configured items counts as complete (vacuous truth); sessions count as
// complete when at least one row exists, duration is irrelevant. A failed
// fetch degrades to all false so the day renders incomplete.
func BuildDailyStatus(in DayInputs) DailyStatus {
	if in.FetchFailed {
		return DailyStatus{}
	}
	return DailyStatus{
		IntentionMorning: in.MorningDone >= in.MorningRoutines,
		IntentionEvening: in.EveningDone >= in.EveningRoutines,
		CriticalTasks:    in.TasksDone >= in.TasksTotal,
		Workout:          in.HasWorkout,
		Reading:          in.HasReading,
		PrayerMeditation: in.HasMeditation,
	}
}

// CompletedCount collapses the snapshot into the 0-5 calendar dot count.
// Morning and evening intentions fold into a single combined component.
func (s DailyStatus) CompletedCount() int {
	count := 0
	if s.IntentionMorning && s.IntentionEvening {
		count++
	}
	if s.CriticalTasks {
		count++
	}
	if s.Workout {
		count++
	}
	if s.Reading {
		count++
	}
	if s.PrayerMeditation {
		count++
	}
	return count
}

// Eligibility says whether winning the day is meaningful, separate from
// whether it has already been won.
type Eligibility struct {
	HasAnyConfigured bool `json:"has_any_configured"`
	AllComplete      bool `json:"all_complete"`
}

// CheckEligibility applies the win gate: morning + evening + tasks must be
// complete AND something must actually be configured. A completely blank day
// is never winnable even though each sub-check vacuously passes. Sessions
// (workout/reading/meditation) stay outside the gate on purpose; they only
// affect the calendar dots.
func CheckEligibility(in DayInputs) Eligibility {
	status := BuildDailyStatus(in)
	hasAny := !in.FetchFailed &&
		(in.MorningRoutines > 0 || in.EveningRoutines > 0 || in.TasksTotal > 0)
	return Eligibility{
		HasAnyConfigured: hasAny,
		AllComplete: hasAny &&
			status.IntentionMorning &&
			status.IntentionEvening &&
			status.CriticalTasks,
	}
}

// DayClass is the visual classification of a calendar day.
type DayClass string

const (
	ClassWon     DayClass = "won"
	ClassPartial DayClass = "partial"
	ClassMissed  DayClass = "missed"
	ClassNone    DayClass = "none"
)

// ClassifyDay picks the calendar color for a day. Won status comes only from
// an explicit win record, never from completion counts; counts only decide
// how a non-won day renders.
func ClassifyDay(won bool, completedCount int, day, today time.Time) DayClass {
	switch {
	case won:
		return ClassWon
	case completedCount > 0:
		return ClassPartial
	case day.Before(today):
		return ClassMissed
	default:
		return ClassNone
	}
}
