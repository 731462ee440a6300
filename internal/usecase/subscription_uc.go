// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"errors"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type SubscriptionUseCase interface {
	// Check returns the caller's entitlement. A caller with no record at
	// all is treated as fully entitled (fail-open); an existing record
	// with an unknown status is rejected.
	Check(ctx context.Context, userID string) (*model.Subscription, error)
}

type subscriptionUC struct {
	subs repository.SubscriptionRepository
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository) *subscriptionUC {
	return &subscriptionUC{subs: subs}
}

func (s *subscriptionUC) Check(ctx context.Context, userID string) (*model.Subscription, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	sub, err := s.subs.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// No subscription row: default to premium access.
		return &model.Subscription{UserID: userID, Status: model.SubscriptionPremium}, nil
	}
	if err != nil {
		return nil, err
	}
	if !sub.Active() {
		return nil, domain.ErrSubscriptionInactive
	}
	return sub, nil
}
