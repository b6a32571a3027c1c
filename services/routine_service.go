package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/bus"
	"winDayAPI/internal/datekey"
	"winDayAPI/internal/types/routine"
)

// RoutineService manages the morning/evening intention config and the
// per-date completion rows the status aggregator reads.
type RoutineService struct {
	db  *pgxpool.Pool
	bus *bus.Bus
}

func NewRoutineService(db *pgxpool.Pool, changeBus *bus.Bus) *RoutineService {
	return &RoutineService{db: db, bus: changeBus}
}

func (s *RoutineService) ListRoutines(ctx context.Context, clerkID string) ([]*routine.Routine, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, title, category, created_at
	FROM routines
	WHERE user_id = $1
	ORDER BY category, created_at
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	defer rows.Close()

	routines := []*routine.Routine{}
	for rows.Next() {
		r := &routine.Routine{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Category, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan routine: %w", err)
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *RoutineService) CreateRoutine(ctx context.Context, clerkID string, req *routine.CreateRoutineRequest) (*routine.Routine, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if req.Category != routine.CategoryMorning && req.Category != routine.CategoryEvening {
		return nil, fmt.Errorf("invalid routine category %q", req.Category)
	}

	r := &routine.Routine{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    req.Title,
		Category: req.Category,
	}

	query := `
	INSERT INTO routines (id, user_id, title, category, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING created_at
	`
	if err := s.db.QueryRow(ctx, query, r.ID, r.UserID, r.Title, r.Category).Scan(&r.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}

	s.bus.Publish()
	return r, nil
}

func (s *RoutineService) DeleteRoutine(ctx context.Context, clerkID string, routineID string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(routineID)
	if err != nil {
		return fmt.Errorf("invalid routine id: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM routines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("routine not found")
	}

	s.bus.Publish()
	return nil
}

// SetCompletion upserts the completion row for (routine, date). The date
// defaults to today. Ownership is checked through the routines table so one
// user cannot complete another user's routine.
func (s *RoutineService) SetCompletion(ctx context.Context, clerkID string, req *routine.CompleteRoutineRequest) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	routineID, err := uuid.Parse(req.RoutineID)
	if err != nil {
		return fmt.Errorf("invalid routine id: %w", err)
	}

	dateKey := req.Date
	if dateKey == "" {
		dateKey = datekey.TodayKey()
	}
	date, err := datekey.Parse(dateKey)
	if err != nil {
		return err
	}

	var owned bool
	ownQuery := `SELECT EXISTS(SELECT 1 FROM routines WHERE id = $1 AND user_id = $2)`
	if err := s.db.QueryRow(ctx, ownQuery, routineID, userID).Scan(&owned); err != nil {
		return fmt.Errorf("failed to check routine ownership: %w", err)
	}
	if !owned {
		return fmt.Errorf("routine not found")
	}

	query := `
	INSERT INTO routine_completions (routine_id, date, completed)
	VALUES ($1, $2, $3)
	ON CONFLICT (routine_id, date)
	DO UPDATE SET completed = $3
	`
	if _, err := s.db.Exec(ctx, query, routineID, date, req.Completed); err != nil {
		return fmt.Errorf("failed to set routine completion: %w", err)
	}

	s.bus.Publish()
	return nil
}
