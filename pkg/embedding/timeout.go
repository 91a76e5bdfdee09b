package embedding

import (
	"context"
	"time"

	"ai-health-assistant-be/pkg/llm"
)

type timeoutProvider struct {
	next    EmbeddingProvider
	timeout time.Duration
}

// WithTimeout bounds every Generate on p by d. A zero duration returns p as is.
func WithTimeout(p EmbeddingProvider, d time.Duration) EmbeddingProvider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{next: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, llm.Classify(err)
	}
	return resp, nil
}
