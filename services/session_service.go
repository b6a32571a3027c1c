package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/bus"
	"winDayAPI/internal/datekey"
	"winDayAPI/internal/types/session"
)

// SessionService logs timed workout/reading/meditation sessions into their
// per-kind tables. The status aggregator only cares about row existence per
// date; duration and subtype ride along for the history views.
type SessionService struct {
	db  *pgxpool.Pool
	bus *bus.Bus
}

func NewSessionService(db *pgxpool.Pool, changeBus *bus.Bus) *SessionService {
	return &SessionService{db: db, bus: changeBus}
}

func insertQueryFor(kind string) (string, error) {
	switch kind {
	case session.KindWorkout:
		return `INSERT INTO workout_sessions (id, user_id, started_at, duration_seconds, subtype) VALUES ($1, $2, $3, $4, $5)`, nil
	case session.KindReading:
		return `INSERT INTO reading_sessions (id, user_id, started_at, duration_seconds, subtype) VALUES ($1, $2, $3, $4, $5)`, nil
	case session.KindMeditation:
		return `INSERT INTO meditation_sessions (id, user_id, started_at, duration_seconds, subtype) VALUES ($1, $2, $3, $4, $5)`, nil
	}
	return "", fmt.Errorf("invalid session kind %q", kind)
}

func listQueryFor(kind string) (string, error) {
	switch kind {
	case session.KindWorkout:
		return `SELECT id, user_id, started_at, duration_seconds, subtype FROM workout_sessions WHERE user_id = $1 AND started_at::date = $2 ORDER BY started_at`, nil
	case session.KindReading:
		return `SELECT id, user_id, started_at, duration_seconds, subtype FROM reading_sessions WHERE user_id = $1 AND started_at::date = $2 ORDER BY started_at`, nil
	case session.KindMeditation:
		return `SELECT id, user_id, started_at, duration_seconds, subtype FROM meditation_sessions WHERE user_id = $1 AND started_at::date = $2 ORDER BY started_at`, nil
	}
	return "", fmt.Errorf("invalid session kind %q", kind)
}

// LogSession records a session starting now.
func (s *SessionService) LogSession(ctx context.Context, clerkID string, req *session.LogSessionRequest) (*session.Session, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query, err := insertQueryFor(req.Kind)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		ID:              uuid.New(),
		UserID:          userID,
		Kind:            req.Kind,
		StartedAt:       time.Now(),
		DurationSeconds: req.DurationSeconds,
	}
	if req.Subtype != "" {
		sess.Subtype = &req.Subtype
	}

	if _, err := s.db.Exec(ctx, query, sess.ID, sess.UserID, sess.StartedAt, sess.DurationSeconds, sess.Subtype); err != nil {
		return nil, fmt.Errorf("failed to log %s session: %w", req.Kind, err)
	}

	s.bus.Publish()
	return sess, nil
}

// ListSessions returns the sessions of one kind on one date (default today).
func (s *SessionService) ListSessions(ctx context.Context, clerkID string, kind string, dateKey string) ([]*session.Session, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query, err := listQueryFor(kind)
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

	rows, err := s.db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s sessions: %w", kind, err)
	}
	defer rows.Close()

	sessions := []*session.Session{}
	for rows.Next() {
		sess := &session.Session{Kind: kind}
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.StartedAt, &sess.DurationSeconds, &sess.Subtype); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
