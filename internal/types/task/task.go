package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	TaskDate  string    `json:"task_date" db:"task_date"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateTaskRequest struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"` // defaults to today
}

type SetTaskDoneRequest struct {
	TaskID string `json:"taskId"`
	Done   bool   `json:"done"`
}
