// File: internal/infra/web/mock_test.go
package web

import (
	"context"
	"sync"
	"time"

	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/usecase"
)

type fakePipeline struct {
	result  *model.AnswerResult
	err     error
	lastReq usecase.ProcessRequest
	calls   int
}

func (f *fakePipeline) Process(ctx context.Context, req usecase.ProcessRequest) (*model.AnswerResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeHistory struct {
	items   []*model.Interaction
	listErr error
}

func (f *fakeHistory) Save(ctx context.Context, it *model.Interaction) error { return nil }

func (f *fakeHistory) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Interaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

// memRedis backs the rate limiter in tests without a real server.
type memRedis struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemRedis() *memRedis {
	return &memRedis{counts: make(map[string]int64)}
}

func (m *memRedis) Ping(ctx context.Context) error { return nil }
func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (m *memRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (m *memRedis) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}
func (m *memRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}
func (m *memRedis) Del(ctx context.Context, keys ...string) error { return nil }
func (m *memRedis) Close() error                                  { return nil }
