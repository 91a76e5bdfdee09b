package memory

import (
	"context"
	"time"

	"ai-health-assistant-be/pkg/embedding"

	"github.com/patrickmn/go-cache"
)

type EmbeddingCache struct {
	cache *cache.Cache
}

var _ embedding.Cache = (*EmbeddingCache)(nil)

func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	// Expired vectors are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &EmbeddingCache{
		cache: c,
	}
}

func (r *EmbeddingCache) Set(_ context.Context, key string, values []float32) {
	r.cache.Set(key, values, cache.DefaultExpiration)
}

func (r *EmbeddingCache) Get(_ context.Context, key string) ([]float32, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]float32), true
	}
	return nil, false
}
