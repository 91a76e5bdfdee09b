package factory

import (
	"context"
	"fmt"
	"time"

	"ai-health-assistant-be/pkg/llm"
	"ai-health-assistant-be/pkg/llm/anthropic"
	"ai-health-assistant-be/pkg/llm/gemini"
	"ai-health-assistant-be/pkg/llm/huggingface"
	"ai-health-assistant-be/pkg/llm/ollama"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	var (
		provider llm.LLMProvider
		err      error
	)

	switch cfg.Provider {
	case "", "gemini":
		provider, err = gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case "anthropic", "claude":
		provider, err = anthropic.NewClaudeProvider(cfg.APIKey, cfg.Model)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		provider = ollama.NewOllamaProvider(baseURL, cfg.Model)
	case "huggingface":
		provider = huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return llm.WithTracing(llm.WithTimeout(provider, cfg.Timeout), cfg.Provider), nil
}
