package session

import (
	"time"

	"github.com/google/uuid"
)

// Session kinds map one-to-one onto the per-kind tables
// (workout_sessions, reading_sessions, meditation_sessions).
const (
	KindWorkout    = "workout"
	KindReading    = "reading"
	KindMeditation = "meditation"
)

type Session struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Kind            string    `json:"kind"`
	StartedAt       time.Time `json:"started_at" db:"started_at"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	Subtype         *string   `json:"subtype,omitempty" db:"subtype"`
}

type LogSessionRequest struct {
	Kind            string `json:"kind"`
	DurationSeconds int    `json:"durationSeconds"`
	Subtype         string `json:"subtype,omitempty"`
}

func ValidKind(kind string) bool {
	switch kind {
	case KindWorkout, KindReading, KindMeditation:
		return true
	}
	return false
}
