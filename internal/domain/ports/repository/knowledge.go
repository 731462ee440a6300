package repository

import (
	"context"

	"voice-assistant-api/internal/domain/model"
)

// KnowledgeRepository queries the knowledge base by textual match.
type KnowledgeRepository interface {
	// SearchByKeywords returns documents whose content contains any of the
	// keywords (case-insensitive substring match), in store order, capped
	// at limit.
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*model.KnowledgeDocument, error)
}
