package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/bus"
	"winDayAPI/internal/datekey"
	"winDayAPI/internal/engine"
	"winDayAPI/internal/types/win"
)

// WinService owns the user_wins table: marking days won, the win-date set,
// and the streak walk over the trailing window. Streaks are cached per user
// and invalidated through the change bus; each entry carries the date it was
// computed for, since the walk's window shifts at midnight even without any
// mutation.
type WinService struct {
	db         *pgxpool.Pool
	bus        *bus.Bus
	windowDays int

	cacheMu     sync.Mutex
	streakCache map[string]cachedStreak
}

type cachedStreak struct {
	dateKey string
	streak  engine.Streak
}

func NewWinService(db *pgxpool.Pool, changeBus *bus.Bus, windowDays int) *WinService {
	if windowDays <= 0 {
		windowDays = engine.DefaultStreakWindowDays
	}
	s := &WinService{
		db:          db,
		bus:         changeBus,
		windowDays:  windowDays,
		streakCache: make(map[string]cachedStreak),
	}
	changeBus.Subscribe(s.invalidateCache)
	return s
}

func (s *WinService) invalidateCache() {
	s.cacheMu.Lock()
	s.streakCache = make(map[string]cachedStreak)
	s.cacheMu.Unlock()
}

// cachedStreakFor returns the cached streak only when it was computed for
// the given date; an entry from an earlier day is stale because the walk's
// window has moved.
func (s *WinService) cachedStreakFor(clerkID, todayKey string) (engine.Streak, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	cached, ok := s.streakCache[clerkID]
	if !ok || cached.dateKey != todayKey {
		return engine.Streak{}, false
	}
	return cached.streak, true
}

func (s *WinService) storeStreak(clerkID, todayKey string, streak engine.Streak) {
	s.cacheMu.Lock()
	s.streakCache[clerkID] = cachedStreak{dateKey: todayKey, streak: streak}
	s.cacheMu.Unlock()
}

// MarkWon records a win for the given date (today when empty). Calling it
// twice for the same date never produces two rows and never errors on the
// second call; only genuine write failures reach the caller.
func (s *WinService) MarkWon(ctx context.Context, clerkID string, dateKey string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	if dateKey == "" {
		dateKey = datekey.TodayKey()
	}
	date, err := datekey.Parse(dateKey)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO user_wins (id, user_id, win_date, created_at)
	VALUES ($1, $2, $3, NOW())
	`
	_, err = s.db.Exec(ctx, query, uuid.New(), userID, date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// already won, idempotent
		} else {
			// fallback upsert keyed on the same composite
			upsert := `
			INSERT INTO user_wins (id, user_id, win_date, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id, win_date) DO NOTHING
			`
			if _, err := s.db.Exec(ctx, upsert, uuid.New(), userID, date); err != nil {
				return fmt.Errorf("failed to mark day won: %w", err)
			}
		}
	}

	s.notifyChanged()
	return nil
}

// notifyChanged publishes immediately plus a short re-publish burst, since
// the store may lag the write and subscribers re-fetch on each signal.
func (s *WinService) notifyChanged() {
	s.bus.Publish()
	time.AfterFunc(300*time.Millisecond, s.bus.Publish)
	time.AfterFunc(1200*time.Millisecond, s.bus.Publish)
}

// WonOn reports whether an explicit win record exists for the date.
func (s *WinService) WonOn(ctx context.Context, clerkID string, dateKey string) (bool, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return false, err
	}
	date, err := datekey.Parse(dateKey)
	if err != nil {
		return false, err
	}

	var won bool
	query := `SELECT EXISTS(SELECT 1 FROM user_wins WHERE user_id = $1 AND win_date = $2)`
	if err := s.db.QueryRow(ctx, query, userID, date).Scan(&won); err != nil {
		log.Printf("WonOn: fetch failed for %s: %v", dateKey, err)
		return false, nil
	}
	return won, nil
}

// winDateSet fetches the win-date keys in [from, to] inclusive.
func (s *WinService) winDateSet(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]struct{}, error) {
	query := `
	SELECT win_date
	FROM user_wins
	WHERE user_id = $1
		AND win_date >= $2
		AND win_date <= $3
	`
	rows, err := s.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch win dates: %w", err)
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan win date: %w", err)
		}
		set[datekey.ToKey(d)] = struct{}{}
	}
	return set, rows.Err()
}

// GetStreak computes current/best streaks over the trailing window ending
// today. Fetch failures degrade to a zero streak so the dashboard never
// errors out over a stale read.
func (s *WinService) GetStreak(ctx context.Context, clerkID string) (engine.Streak, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return engine.Streak{}, err
	}

	today := datekey.Today()
	todayKey := datekey.ToKey(today)

	if cached, ok := s.cachedStreakFor(clerkID, todayKey); ok {
		return cached, nil
	}

	start := today.AddDate(0, 0, -(s.windowDays - 1))

	set, err := s.winDateSet(ctx, userID, start, today)
	if err != nil {
		log.Printf("GetStreak: %v", err)
		return engine.Streak{}, nil
	}

	streak := engine.ComputeStreak(set, today, s.windowDays)
	s.storeStreak(clerkID, todayKey, streak)

	return streak, nil
}

// GetHistory returns the won dates within the trailing window, oldest first.
func (s *WinService) GetHistory(ctx context.Context, clerkID string) (*win.HistoryResponse, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	today := datekey.Today()
	start := today.AddDate(0, 0, -(s.windowDays - 1))

	resp := &win.HistoryResponse{
		From:  datekey.ToKey(start),
		To:    datekey.ToKey(today),
		Dates: []string{},
	}

	set, err := s.winDateSet(ctx, userID, start, today)
	if err != nil {
		log.Printf("GetHistory: %v", err)
		return resp, nil
	}

	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := datekey.ToKey(d)
		if _, won := set[key]; won {
			resp.Dates = append(resp.Dates, key)
		}
	}
	return resp, nil
}
