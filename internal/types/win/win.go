package win

import (
	"time"

	"github.com/google/uuid"

	"winDayAPI/internal/engine"
)

// Record is one explicit "this day was won" marker. At most one row exists
// per (user, date); the engine never infers it from completion counts.
type Record struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	WinDate   string    `json:"win_date" db:"win_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type MarkWonRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// DayResponse is the full per-date view: won flag, completion snapshot,
// calendar dot count and the win-eligibility gate.
type DayResponse struct {
	Date           string             `json:"date"`
	Won            bool               `json:"won"`
	Status         engine.DailyStatus `json:"status"`
	CompletedCount int                `json:"completed_count"`
	Eligibility    engine.Eligibility `json:"eligibility"`
}

type HistoryResponse struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Dates []string `json:"dates"`
}
