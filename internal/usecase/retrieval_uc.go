// File: internal/usecase/retrieval_uc.go
package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"voice-assistant-api/internal/domain/ports/repository"
	"voice-assistant-api/internal/infra/metrics"
)

// Compile-time check
var _ RetrievalUseCase = (*retrievalUC)(nil)

// Keywords beyond this bound are silently ignored to cap query cost.
const maxQueryKeywords = 5

// RetrievalUseCase aggregates knowledge-base matches into a single context
// string. Retrieval failure never fails the request; it degrades the
// downstream context to the fallback path.
type RetrievalUseCase interface {
	Retrieve(ctx context.Context, keywords []string) string
}

type retrievalUC struct {
	docs repository.KnowledgeRepository
	topK int
	log  *zerolog.Logger
}

func NewRetrievalUseCase(docs repository.KnowledgeRepository, topK int, log *zerolog.Logger) *retrievalUC {
	if topK <= 0 {
		topK = 3
	}
	return &retrievalUC{docs: docs, topK: topK, log: log}
}

func (r *retrievalUC) Retrieve(ctx context.Context, keywords []string) string {
	if len(keywords) == 0 {
		r.log.Debug().Msg("no keywords extracted, skipping retrieval")
		return ""
	}
	if len(keywords) > maxQueryKeywords {
		keywords = keywords[:maxQueryKeywords]
	}

	docs, err := r.docs.SearchByKeywords(ctx, keywords, r.topK)
	if err != nil {
		metrics.IncRetrievalDegraded()
		r.log.Warn().Err(err).Msg("knowledge base lookup failed, degrading to empty context")
		return ""
	}
	if len(docs) == 0 {
		metrics.ObserveRetrieval(0)
		return ""
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}
	metrics.ObserveRetrieval(len(docs))
	r.log.Info().Int("documents", len(docs)).Msg("retrieved knowledge base context")
	return strings.Join(contents, "\n\n")
}
