// File: internal/infra/redis/rate_limiter_test.go
package redis

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClient struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
}

func newFakeClient() *fakeClient {
	return &fakeClient{counts: make(map[string]int64), expires: make(map[string]time.Duration)}
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }
func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (f *fakeClient) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeClient) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}
func (f *fakeClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = expiration
	return nil
}
func (f *fakeClient) Del(ctx context.Context, keys ...string) error { return nil }
func (f *fakeClient) Close() error                                  { return nil }

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	cli := newFakeClient()
	rl := NewRateLimiter(cli)
	key := UserRequestKey("user-1")

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(context.Background(), key, 3, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := rl.Allow(context.Background(), key, 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("fourth request must be denied")
	}
}

func TestRateLimiter_SetsWindowOnFirstHit(t *testing.T) {
	t.Parallel()

	cli := newFakeClient()
	rl := NewRateLimiter(cli)
	key := UserRequestKey("user-2")

	if _, err := rl.Allow(context.Background(), key, 10, 30*time.Second); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if cli.expires[key] != 30*time.Second {
		t.Fatalf("expire = %v, want 30s", cli.expires[key])
	}
}

func TestUserRequestKey_IsPerUser(t *testing.T) {
	t.Parallel()

	if UserRequestKey("a") == UserRequestKey("b") {
		t.Fatal("keys must differ per user")
	}
}
