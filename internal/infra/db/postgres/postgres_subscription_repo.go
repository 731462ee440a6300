package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) FindByUserID(ctx context.Context, userID string) (*model.Subscription, error) {
	const q = `
SELECT user_id, status, expires_at
FROM subscriptions
WHERE user_id = $1
LIMIT 1;`

	var sub model.Subscription
	var status string
	err := r.pool.QueryRow(ctx, q, userID).Scan(&sub.UserID, &status, &sub.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sub.Status = model.SubscriptionStatus(status)
	return &sub, nil
}
