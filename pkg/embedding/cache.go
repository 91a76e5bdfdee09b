package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores vectors by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, values []float32)
}

// CachedProvider memoizes embeddings so that repeated ingestion of the same
// source and repeated questions do not hit the remote model again.
type CachedProvider struct {
	next      EmbeddingProvider
	cache     Cache
	namespace string
}

func NewCachedProvider(next EmbeddingProvider, cache Cache, namespace string) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, namespace: namespace}
}

func (p *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := p.key(text, taskType)
	if values, ok := p.cache.Get(ctx, key); ok {
		return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
	}

	resp, err := p.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}

	p.cache.Set(ctx, key, resp.Embedding.Values)
	return resp, nil
}

func (p *CachedProvider) key(text, taskType string) string {
	sum := sha256.Sum256([]byte(p.namespace + "|" + taskType + "|" + text))
	return "emb:" + hex.EncodeToString(sum[:])
}
