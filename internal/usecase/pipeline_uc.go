// File: internal/usecase/pipeline_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/adapter"
	"voice-assistant-api/internal/domain/ports/repository"
	"voice-assistant-api/internal/infra/logging"
)

// Compile-time check
var _ PipelineUseCase = (*pipelineUC)(nil)

// ProcessRequest carries one audio submission through the pipeline.
type ProcessRequest struct {
	Audio       *model.AudioSubmission
	UserContext string
	UserID      string
}

// PipelineUseCase sequences transcription, retrieval, context resolution
// and answer generation for a single request. All-or-nothing: any stage
// failure (other than retrieval, which degrades) aborts the request.
type PipelineUseCase interface {
	Process(ctx context.Context, req ProcessRequest) (*model.AnswerResult, error)
}

type pipelineUC struct {
	transcriber      adapter.TranscriptionAdapter
	retrieval        RetrievalUseCase
	answers          AnswerUseCase
	subs             SubscriptionUseCase
	history          repository.InteractionRepository
	minKeywordLength int
	log              *zerolog.Logger
}

func NewPipelineUseCase(
	transcriber adapter.TranscriptionAdapter,
	retrieval RetrievalUseCase,
	answers AnswerUseCase,
	subs SubscriptionUseCase,
	history repository.InteractionRepository,
	minKeywordLength int,
	log *zerolog.Logger,
) *pipelineUC {
	if minKeywordLength <= 0 {
		minKeywordLength = DefaultMinKeywordLength
	}
	return &pipelineUC{
		transcriber:      transcriber,
		retrieval:        retrieval,
		answers:          answers,
		subs:             subs,
		history:          history,
		minKeywordLength: minKeywordLength,
		log:              log,
	}
}

func (p *pipelineUC) Process(ctx context.Context, req ProcessRequest) (*model.AnswerResult, error) {
	defer logging.TraceDuration(p.log, "Pipeline.Process")()

	if req.Audio == nil || req.Audio.Empty() {
		return nil, domain.ErrEmptyAudio
	}

	sub, err := p.subs.Check(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	transcript, err := p.transcriber.Transcribe(ctx, req.Audio)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int("transcript_len", len(transcript)).Msg("transcription completed")

	keywords := ExtractKeywords(transcript, p.minKeywordLength)
	retrieved := p.retrieval.Retrieve(ctx, keywords)

	rc := ResolveContext(req.UserContext, retrieved)

	answer, err := p.answers.Generate(ctx, transcript, rc)
	if err != nil {
		return nil, err
	}

	// Best-effort history write; a storage hiccup must not void the answer.
	it := &model.Interaction{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Transcript:  transcript,
		Answer:      answer,
		ContextUsed: rc.Source,
		CreatedAt:   time.Now(),
	}
	if err := p.history.Save(ctx, it); err != nil {
		p.log.Warn().Err(err).Str("user_id", req.UserID).Msg("failed to persist interaction")
	}

	return &model.AnswerResult{
		UserID:             req.UserID,
		SubscriptionStatus: string(sub.Status),
		Transcript:         transcript,
		Answer:             answer,
		ContextUsed:        rc.Source,
	}, nil
}
