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
	"winDayAPI/internal/types/dashboard"
)

// DashboardService produces the personal-mastery rollup: tasks done this
// week, best streak, monthly consistency percent and active goal count.
type DashboardService struct {
	db   *pgxpool.Pool
	wins *WinService
}

func NewDashboardService(db *pgxpool.Pool, wins *WinService) *DashboardService {
	return &DashboardService{db: db, wins: wins}
}

// GetMasteryMetrics joins the four independent rollups. Each read failure
// degrades its metric to zero; the dashboard never errors over a stale read.
func (s *DashboardService) GetMasteryMetrics(ctx context.Context, clerkID string) (*dashboard.MasteryMetrics, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	today := datekey.Today()
	weekStart, weekEnd := engine.WeekBounds(today)
	monthFirst, elapsedDays := engine.MonthElapsed(today)

	metrics := &dashboard.MasteryMetrics{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := `
		SELECT COUNT(*)
		FROM day_tasks
		WHERE user_id = $1
			AND done
			AND task_date >= $2
			AND task_date < $3
		`
		if err := s.db.QueryRow(gctx, query, userID, weekStart, weekEnd).Scan(&metrics.TasksCompletedThisWeek); err != nil {
			log.Printf("GetMasteryMetrics: weekly tasks: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		streak, err := s.wins.GetStreak(gctx, clerkID)
		if err != nil {
			log.Printf("GetMasteryMetrics: streak: %v", err)
			return nil
		}
		metrics.BestStreak = streak.Best
		return nil
	})
	g.Go(func() error {
		daysWith, err := s.daysWithCompletion(gctx, userID, monthFirst, today)
		if err != nil {
			log.Printf("GetMasteryMetrics: consistency: %v", err)
			return nil
		}
		metrics.ConsistencyPercent = engine.ConsistencyPercent(daysWith, elapsedDays)
		return nil
	})
	g.Go(func() error {
		query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND active`
		if err := s.db.QueryRow(gctx, query, userID).Scan(&metrics.ActiveGoals); err != nil {
			log.Printf("GetMasteryMetrics: goals: %v", err)
		}
		return nil
	})
	g.Wait()

	return metrics, nil
}

// daysWithCompletion counts the distinct calendar days in [first, today]
// that have at least one qualifying routine completion.
func (s *DashboardService) daysWithCompletion(ctx context.Context, userID uuid.UUID, first, today time.Time) (int, error) {
	query := `
	SELECT COUNT(DISTINCT rc.date)
	FROM routine_completions rc
	INNER JOIN routines r ON r.id = rc.routine_id
	WHERE r.user_id = $1
		AND rc.completed
		AND rc.date >= $2
		AND rc.date <= $3
	`
	var count int
	if err := s.db.QueryRow(ctx, query, userID, first, today).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completion days: %w", err)
	}
	return count, nil
}
