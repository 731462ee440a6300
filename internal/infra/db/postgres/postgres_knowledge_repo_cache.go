package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/repository"
	"voice-assistant-api/internal/infra/metrics"
	red "voice-assistant-api/internal/infra/redis"
)

var _ repository.KnowledgeRepository = (*knowledgeRepoCacheDecorator)(nil)

// knowledgeRepoCacheDecorator caches keyword lookups in Redis. The same
// utterance tends to repeat across users, so a short TTL saves most of
// the ILIKE scans without staleness concerns.
type knowledgeRepoCacheDecorator struct {
	inner repository.KnowledgeRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewKnowledgeRepoCacheDecorator(inner repository.KnowledgeRepository, cache red.RedisClient, ttl time.Duration) repository.KnowledgeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &knowledgeRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *knowledgeRepoCacheDecorator) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*model.KnowledgeDocument, error) {
	key := fmt.Sprintf("kb:%d:%s", limit, strings.Join(keywords, "|"))

	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("knowledge", "hit")
		var docs []*model.KnowledgeDocument
		if json.Unmarshal([]byte(val), &docs) == nil {
			return docs, nil
		}
	} else if err != redis.Nil {
		// Cache unavailable; fall through to the store.
	}

	metrics.IncCacheRequest("knowledge", "miss")
	docs, err := d.inner.SearchByKeywords(ctx, keywords, limit)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if bytes, err := json.Marshal(docs); err == nil {
			_ = d.cache.Set(ctx, key, bytes, d.ttl)
		}
	}
	return docs, nil
}
