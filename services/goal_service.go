package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/types/goal"
)

// GoalService manages goal rows. The dashboard only needs the active count;
// the list/create/delete surface backs the goals screen.
type GoalService struct {
	db *pgxpool.Pool
}

func NewGoalService(db *pgxpool.Pool) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) ListGoals(ctx context.Context, clerkID string) ([]*goal.Goal, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, title, active, created_at
	FROM goals
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []*goal.Goal{}
	for rows.Next() {
		g := &goal.Goal{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Active, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *GoalService) CreateGoal(ctx context.Context, clerkID string, req *goal.CreateGoalRequest) (*goal.Goal, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	g := &goal.Goal{
		ID:     uuid.New(),
		UserID: userID,
		Title:  req.Title,
		Active: true,
	}

	query := `
	INSERT INTO goals (id, user_id, title, active, created_at)
	VALUES ($1, $2, $3, true, NOW())
	RETURNING created_at
	`
	if err := s.db.QueryRow(ctx, query, g.ID, g.UserID, g.Title).Scan(&g.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return g, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, clerkID string, goalID string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(goalID)
	if err != nil {
		return fmt.Errorf("invalid goal id: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
