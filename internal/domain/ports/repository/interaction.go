package repository

import (
	"context"

	"voice-assistant-api/internal/domain/model"
)

// InteractionRepository persists completed exchanges for history listing.
type InteractionRepository interface {
	Save(ctx context.Context, it *model.Interaction) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Interaction, error)
}
