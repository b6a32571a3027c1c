package goal

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateGoalRequest struct {
	Title string `json:"title"`
}
