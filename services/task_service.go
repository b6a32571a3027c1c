package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/bus"
	"winDayAPI/internal/datekey"
	"winDayAPI/internal/types/task"
)

// TaskService manages the day_tasks rows.
type TaskService struct {
	db  *pgxpool.Pool
	bus *bus.Bus
}

func NewTaskService(db *pgxpool.Pool, changeBus *bus.Bus) *TaskService {
	return &TaskService{db: db, bus: changeBus}
}

func (s *TaskService) ListTasks(ctx context.Context, clerkID string, dateKey string) ([]*task.Task, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if dateKey == "" {
		dateKey = datekey.TodayKey()
	}
	date, err := datekey.Parse(dateKey)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, title, task_date, done, created_at
	FROM day_tasks
	WHERE user_id = $1 AND task_date = $2
	ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}
		var taskDate time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &taskDate, &t.Done, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.TaskDate = datekey.ToKey(taskDate)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *TaskService) CreateTask(ctx context.Context, clerkID string, req *task.CreateTaskRequest) (*task.Task, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	dateKey := req.Date
	if dateKey == "" {
		dateKey = datekey.TodayKey()
	}
	date, err := datekey.Parse(dateKey)
	if err != nil {
		return nil, err
	}

	t := &task.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    req.Title,
		TaskDate: dateKey,
	}

	query := `
	INSERT INTO day_tasks (id, user_id, title, task_date, done, created_at)
	VALUES ($1, $2, $3, $4, false, NOW())
	RETURNING created_at
	`
	if err := s.db.QueryRow(ctx, query, t.ID, t.UserID, t.Title, date).Scan(&t.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.bus.Publish()
	return t, nil
}

func (s *TaskService) SetTaskDone(ctx context.Context, clerkID string, req *task.SetTaskDoneRequest) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		return fmt.Errorf("invalid task id: %w", err)
	}

	result, err := s.db.Exec(ctx,
		`UPDATE day_tasks SET done = $3 WHERE id = $1 AND user_id = $2`,
		taskID, userID, req.Done)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found")
	}

	s.bus.Publish()
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, clerkID string, taskID string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(taskID)
	if err != nil {
		return fmt.Errorf("invalid task id: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM day_tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found")
	}

	s.bus.Publish()
	return nil
}
