package repository

import (
	"context"

	"voice-assistant-api/internal/domain/model"
)

// SubscriptionRepository reads entitlement records.
type SubscriptionRepository interface {
	// FindByUserID returns domain.ErrNotFound when no record exists.
	FindByUserID(ctx context.Context, userID string) (*model.Subscription, error)
}
