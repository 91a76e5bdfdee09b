package factory

import (
	"context"
	"fmt"
	"time"

	"ai-health-assistant-be/pkg/embedding"
	"ai-health-assistant-be/pkg/embedding/jina"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewEmbeddingProvider builds the configured embedder with every call bounded
// by cfg.Timeout.
func NewEmbeddingProvider(ctx context.Context, cfg Config) (embedding.EmbeddingProvider, error) {
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return embedding.WithTimeout(provider, cfg.Timeout), nil
}

func newProvider(ctx context.Context, cfg Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		return embedding.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case "ollama":
		return embedding.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "jina":
		return jina.NewJinaProvider(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
