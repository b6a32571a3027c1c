package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"winDayAPI/internal/types/subscription"
)

// SubscriptionService reads the subscription row the billing site maintains.
// Checkout and the Stripe webhook live on the website, not here.
type SubscriptionService struct {
	db *pgxpool.Pool
}

func NewSubscriptionService(db *pgxpool.Pool) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// GetStatus returns the user's paid-tier status, "none" when no row exists.
func (s *SubscriptionService) GetStatus(ctx context.Context, clerkID string) (*subscription.StatusResponse, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT status, current_period_end
	FROM subscriptions
	WHERE user_id = $1
	ORDER BY updated_at DESC
	LIMIT 1
	`
	resp := &subscription.StatusResponse{}
	err = s.db.QueryRow(ctx, query, userID).Scan(&resp.Status, &resp.CurrentPeriodEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &subscription.StatusResponse{Status: "none"}, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return resp, nil
}
