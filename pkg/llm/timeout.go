package llm

import (
	"context"
	"time"
)

type timeoutProvider struct {
	next    LLMProvider
	timeout time.Duration
}

// WithTimeout bounds every call on p by d. A zero duration returns p as is.
func WithTimeout(p LLMProvider, d time.Duration) LLMProvider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{next: p, timeout: d}
}

func (t *timeoutProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := t.next.Chat(ctx, history, options...)
	if err != nil {
		return "", Classify(err)
	}
	return out, nil
}

func (t *timeoutProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return t.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}
