package memory

import (
	"context"
	"encoding/json"
	"time"

	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/embedding"

	"github.com/redis/go-redis/v9"
)

// RedisEmbeddingCache shares vectors between API replicas. Failures degrade
// to a cache miss.
type RedisEmbeddingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

var _ embedding.Cache = (*RedisEmbeddingCache)(nil)

func NewRedisEmbeddingCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *RedisEmbeddingCache {
	return &RedisEmbeddingCache{rdb: rdb, ttl: ttl, logger: log}
}

func (r *RedisEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("EMBED_CACHE", "Redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var values []float32
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	return values, true
}

func (r *RedisEmbeddingCache) Set(ctx context.Context, key string, values []float32) {
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("EMBED_CACHE", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}
