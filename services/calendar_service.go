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
	"winDayAPI/internal/types/calendar"
)

// CalendarService renders a month of day statuses. It batches the month's
// rows per table instead of re-running the single-day aggregation thirty
// times.
type CalendarService struct {
	db *pgxpool.Pool
}

func NewCalendarService(db *pgxpool.Pool) *CalendarService {
	return &CalendarService{db: db}
}

// monthRows is everything one month view needs, keyed by date key where the
// value varies per day. Each field is filled by an independent fetch. failed
// marks a month where any fetch errored; the days then render all-false
// rather than letting empty maps read as vacuously complete.
type monthRows struct {
	failed            bool
	morningConfigured int
	eveningConfigured int
	morningDone       map[string]int
	eveningDone       map[string]int
	tasksTotal        map[string]int
	tasksDone         map[string]int
	workoutDays       map[string]struct{}
	readingDays       map[string]struct{}
	meditationDays    map[string]struct{}
	winDays           map[string]struct{}
}

// GetCalendar returns the per-day breakdown for the month. Win status comes
// only from explicit win records; completion counts only drive the visual
// classification of the remaining days.
func (s *CalendarService) GetCalendar(ctx context.Context, clerkID string, year int, month int) (*calendar.CalendarResponse, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	endDate := startDate.AddDate(0, 1, -1)

	rows := s.fetchMonth(ctx, userID, startDate, endDate)

	today := datekey.Today()
	todayKey := datekey.ToKey(today)

	var days []*calendar.CalendarDay
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := datekey.ToKey(d)

		in := engine.DayInputs{
			MorningRoutines: rows.morningConfigured,
			MorningDone:     rows.morningDone[key],
			EveningRoutines: rows.eveningConfigured,
			EveningDone:     rows.eveningDone[key],
			TasksTotal:      rows.tasksTotal[key],
			TasksDone:       rows.tasksDone[key],
			FetchFailed:     rows.failed,
		}
		_, in.HasWorkout = rows.workoutDays[key]
		_, in.HasReading = rows.readingDays[key]
		_, in.HasMeditation = rows.meditationDays[key]

		_, won := rows.winDays[key]
		completed := engine.BuildDailyStatus(in).CompletedCount()

		days = append(days, &calendar.CalendarDay{
			Date:           key,
			Won:            won,
			CompletedCount: completed,
			Class:          string(engine.ClassifyDay(won, completed, d, today)),
			IsToday:        key == todayKey,
		})
	}

	return &calendar.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}, nil
}

func (s *CalendarService) fetchMonth(ctx context.Context, userID uuid.UUID, start, end time.Time) *monthRows {
	rows := &monthRows{
		morningDone:    make(map[string]int),
		eveningDone:    make(map[string]int),
		tasksTotal:     make(map[string]int),
		tasksDone:      make(map[string]int),
		workoutDays:    make(map[string]struct{}),
		readingDays:    make(map[string]struct{}),
		meditationDays: make(map[string]struct{}),
		winDays:        make(map[string]struct{}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fetchConfiguredCounts(ctx, userID, rows)
	})
	g.Go(func() error {
		return s.fetchCompletions(ctx, userID, start, end, rows)
	})
	g.Go(func() error {
		return s.fetchTaskCounts(ctx, userID, start, end, rows)
	})
	g.Go(func() error {
		return s.fetchSessionDays(ctx, userID, "workout_sessions", start, end, rows.workoutDays)
	})
	g.Go(func() error {
		return s.fetchSessionDays(ctx, userID, "reading_sessions", start, end, rows.readingDays)
	})
	g.Go(func() error {
		return s.fetchSessionDays(ctx, userID, "meditation_sessions", start, end, rows.meditationDays)
	})
	g.Go(func() error {
		return s.fetchWinDays(ctx, userID, start, end, rows.winDays)
	})
	if err := g.Wait(); err != nil {
		log.Printf("fetchMonth: %v", err)
		rows.failed = true
	}

	return rows
}

func (s *CalendarService) fetchConfiguredCounts(ctx context.Context, userID uuid.UUID, out *monthRows) error {
	query := `
	SELECT category, COUNT(*)
	FROM routines
	WHERE user_id = $1
	GROUP BY category
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch routine counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return fmt.Errorf("failed to scan routine count: %w", err)
		}
		switch category {
		case "morning":
			out.morningConfigured = count
		case "evening":
			out.eveningConfigured = count
		}
	}
	return rows.Err()
}

func (s *CalendarService) fetchCompletions(ctx context.Context, userID uuid.UUID, start, end time.Time, out *monthRows) error {
	query := `
	SELECT rc.date, r.category, COUNT(*) FILTER (WHERE rc.completed)
	FROM routine_completions rc
	INNER JOIN routines r ON r.id = rc.routine_id
	WHERE r.user_id = $1
		AND rc.date >= $2
		AND rc.date <= $3
	GROUP BY rc.date, r.category
	`
	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		var category string
		var done int
		if err := rows.Scan(&date, &category, &done); err != nil {
			return fmt.Errorf("failed to scan completion row: %w", err)
		}
		key := datekey.ToKey(date)
		switch category {
		case "morning":
			out.morningDone[key] = done
		case "evening":
			out.eveningDone[key] = done
		}
	}
	return rows.Err()
}

func (s *CalendarService) fetchTaskCounts(ctx context.Context, userID uuid.UUID, start, end time.Time, out *monthRows) error {
	query := `
	SELECT task_date, COUNT(*), COUNT(*) FILTER (WHERE done)
	FROM day_tasks
	WHERE user_id = $1
		AND task_date >= $2
		AND task_date <= $3
	GROUP BY task_date
	`
	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch task counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		var total, done int
		if err := rows.Scan(&date, &total, &done); err != nil {
			return fmt.Errorf("failed to scan task row: %w", err)
		}
		key := datekey.ToKey(date)
		out.tasksTotal[key] = total
		out.tasksDone[key] = done
	}
	return rows.Err()
}

func (s *CalendarService) fetchSessionDays(ctx context.Context, userID uuid.UUID, table string, start, end time.Time, out map[string]struct{}) error {
	var query string
	switch table {
	case "workout_sessions":
		query = `SELECT DISTINCT started_at::date FROM workout_sessions WHERE user_id = $1 AND started_at::date >= $2 AND started_at::date <= $3`
	case "reading_sessions":
		query = `SELECT DISTINCT started_at::date FROM reading_sessions WHERE user_id = $1 AND started_at::date >= $2 AND started_at::date <= $3`
	case "meditation_sessions":
		query = `SELECT DISTINCT started_at::date FROM meditation_sessions WHERE user_id = $1 AND started_at::date >= $2 AND started_at::date <= $3`
	default:
		return fmt.Errorf("unknown session table %q", table)
	}

	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch %s days: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return fmt.Errorf("failed to scan %s day: %w", table, err)
		}
		out[datekey.ToKey(date)] = struct{}{}
	}
	return rows.Err()
}

func (s *CalendarService) fetchWinDays(ctx context.Context, userID uuid.UUID, start, end time.Time, out map[string]struct{}) error {
	query := `
	SELECT win_date
	FROM user_wins
	WHERE user_id = $1
		AND win_date >= $2
		AND win_date <= $3
	`
	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch win dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return fmt.Errorf("failed to scan win date: %w", err)
		}
		out[datekey.ToKey(date)] = struct{}{}
	}
	return rows.Err()
}
