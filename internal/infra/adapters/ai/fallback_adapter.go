package ai

import (
	"context"
	"errors"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*FallbackAIAdapter)(nil)

// FallbackAIAdapter chains providers in priority order. A call moves to
// the next provider only on upstream failures (5xx, 429, transport
// errors); malformed-content errors are surfaced as-is because retrying
// another model would mask a contract break.
type FallbackAIAdapter struct {
	providers []adapter.AIServiceAdapter
}

func NewFallbackAIAdapter(providers ...adapter.AIServiceAdapter) *FallbackAIAdapter {
	kept := make([]adapter.AIServiceAdapter, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &FallbackAIAdapter{providers: kept}
}

func (m *FallbackAIAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if len(m.providers) == 0 {
		return 0, errors.New("no ai providers configured")
	}
	return m.providers[0].CountTokens(ctx, model, messages)
}

func (m *FallbackAIAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reply, _, err := m.ChatWithUsage(ctx, model, messages)
	return reply, err
}

func (m *FallbackAIAdapter) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	if len(m.providers) == 0 {
		return "", adapter.Usage{}, errors.New("no ai providers configured")
	}
	var lastErr error
	for i, p := range m.providers {
		// Secondary providers get their own default model: the configured
		// model name belongs to the primary's catalog.
		providerModel := model
		if i > 0 {
			providerModel = ""
		}
		reply, usage, err := p.ChatWithUsage(ctx, providerModel, messages)
		if err == nil {
			return reply, usage, nil
		}
		if !retriable(err) {
			return "", adapter.Usage{}, err
		}
		lastErr = err
	}
	return "", adapter.Usage{}, lastErr
}

func retriable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var up *domain.UpstreamError
	if errors.As(err, &up) {
		return up.Status >= 500 || up.Status == 429
	}
	if errors.Is(err, domain.ErrMalformedLLMResponse) {
		return false
	}
	// transport-level failures (connection refused, DNS) are retriable
	return true
}
