package routine

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryMorning = "morning"
	CategoryEvening = "evening"
)

type Routine struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateRoutineRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type CompleteRoutineRequest struct {
	RoutineID string `json:"routineId"`
	Date      string `json:"date,omitempty"` // defaults to today
	Completed bool   `json:"completed"`
}
