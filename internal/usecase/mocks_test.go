// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/adapter"
)

// memKnowledgeRepo is a small in-memory implementation used by unit tests.
type memKnowledgeRepo struct {
	mu        sync.Mutex
	docs      []*model.KnowledgeDocument
	searchErr error // used by tests to simulate store failures
	calls     int
	lastQuery []string
	lastLimit int
}

func (m *memKnowledgeRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*model.KnowledgeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = append([]string(nil), keywords...)
	m.lastLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.docs) > limit {
		return m.docs[:limit], nil
	}
	return m.docs, nil
}

type memSubscriptionRepo struct {
	store   map[string]*model.Subscription
	findErr error
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{store: make(map[string]*model.Subscription)}
}

func (m *memSubscriptionRepo) FindByUserID(ctx context.Context, userID string) (*model.Subscription, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	sub, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

type memInteractionRepo struct {
	mu      sync.Mutex
	saved   []*model.Interaction
	saveErr error
}

func (m *memInteractionRepo) Save(ctx context.Context, it *model.Interaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *it
	m.saved = append(m.saved, &cp)
	return nil
}

func (m *memInteractionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Interaction
	for _, it := range m.saved {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio *model.AudioSubmission) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type fakeAI struct {
	reply        string
	err          error
	lastMessages []adapter.Message
}

func (f *fakeAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	return len(messages), nil
}

func (f *fakeAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reply, _, err := f.ChatWithUsage(ctx, model, messages)
	return reply, err
}

func (f *fakeAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	f.lastMessages = append([]adapter.Message(nil), messages...)
	if f.err != nil {
		return "", adapter.Usage{}, f.err
	}
	return f.reply, adapter.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, nil
}
