package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"winDayAPI/internal/datekey"
	"winDayAPI/internal/engine"
)

// StatusService aggregates the per-date completion snapshot out of the
// routine, task and session tables.
type StatusService struct {
	db *pgxpool.Pool
}

func NewStatusService(db *pgxpool.Pool) *StatusService {
	return &StatusService{db: db}
}

// GetDay builds the six-component status and the win-eligibility gate for
// one date. The sub-fetches run concurrently; any of them failing degrades
// that slice of the day to zero instead of erroring the whole request.
func (s *StatusService) GetDay(ctx context.Context, clerkID string, dateKey string) (engine.DailyStatus, engine.Eligibility, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return engine.DailyStatus{}, engine.Eligibility{}, err
	}

	date, err := datekey.Parse(dateKey)
	if err != nil {
		return engine.DailyStatus{}, engine.Eligibility{}, err
	}

	in := s.dayInputs(ctx, userID, date)
	return engine.BuildDailyStatus(in), engine.CheckEligibility(in), nil
}

// dayInputs fans out the independent sub-fetches and joins, each goroutine
// writing its own fields. Any sub-fetch failing degrades the whole date to
// all-false inputs: partial results must not leak through, since zero counts
// would read as vacuously complete instead of incomplete.
func (s *StatusService) dayInputs(ctx context.Context, userID uuid.UUID, date time.Time) engine.DayInputs {
	var in engine.DayInputs

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		configured, done, err := s.routineCounts(ctx, userID, "morning", date)
		if err != nil {
			return err
		}
		in.MorningRoutines, in.MorningDone = configured, done
		return nil
	})
	g.Go(func() error {
		configured, done, err := s.routineCounts(ctx, userID, "evening", date)
		if err != nil {
			return err
		}
		in.EveningRoutines, in.EveningDone = configured, done
		return nil
	})
	g.Go(func() error {
		total, done, err := s.taskCounts(ctx, userID, date)
		if err != nil {
			return err
		}
		in.TasksTotal, in.TasksDone = total, done
		return nil
	})
	g.Go(func() error {
		has, err := s.hasSession(ctx, userID, "workout_sessions", date)
		if err != nil {
			return err
		}
		in.HasWorkout = has
		return nil
	})
	g.Go(func() error {
		has, err := s.hasSession(ctx, userID, "reading_sessions", date)
		if err != nil {
			return err
		}
		in.HasReading = has
		return nil
	})
	g.Go(func() error {
		has, err := s.hasSession(ctx, userID, "meditation_sessions", date)
		if err != nil {
			return err
		}
		in.HasMeditation = has
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("dayInputs: %v", err)
		return engine.DayInputs{FetchFailed: true}
	}

	return in
}

func (s *StatusService) routineCounts(ctx context.Context, userID uuid.UUID, category string, date time.Time) (configured, done int, err error) {
	query := `
	SELECT COUNT(r.id) AS configured,
		COUNT(rc.routine_id) FILTER (WHERE rc.completed) AS done
	FROM routines r
	LEFT JOIN routine_completions rc ON rc.routine_id = r.id AND rc.date = $3
	WHERE r.user_id = $1 AND r.category = $2
	`
	err = s.db.QueryRow(ctx, query, userID, category, date).Scan(&configured, &done)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count %s routines: %w", category, err)
	}
	return configured, done, nil
}

func (s *StatusService) taskCounts(ctx context.Context, userID uuid.UUID, date time.Time) (total, done int, err error) {
	query := `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE done)
	FROM day_tasks
	WHERE user_id = $1 AND task_date = $2
	`
	err = s.db.QueryRow(ctx, query, userID, date).Scan(&total, &done)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return total, done, nil
}

func (s *StatusService) hasSession(ctx context.Context, userID uuid.UUID, table string, date time.Time) (bool, error) {
	var query string
	switch table {
	case "workout_sessions":
		query = `SELECT EXISTS(SELECT 1 FROM workout_sessions WHERE user_id = $1 AND started_at::date = $2)`
	case "reading_sessions":
		query = `SELECT EXISTS(SELECT 1 FROM reading_sessions WHERE user_id = $1 AND started_at::date = $2)`
	case "meditation_sessions":
		query = `SELECT EXISTS(SELECT 1 FROM meditation_sessions WHERE user_id = $1 AND started_at::date = $2)`
	default:
		return false, fmt.Errorf("unknown session table %q", table)
	}

	var has bool
	if err := s.db.QueryRow(ctx, query, userID, date).Scan(&has); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return has, nil
}
