package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-health-assistant-be/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.ProviderErrorKind
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), apperror.KindTimeout},
		{"http 429", &StatusError{Provider: "ollama", StatusCode: 429}, apperror.KindRateLimited},
		{"http 504", &StatusError{Provider: "ollama", StatusCode: 504}, apperror.KindTimeout},
		{"gemini quota", errors.New("Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED"), apperror.KindRateLimited},
		{"quota text", errors.New("Quota exceeded for metric"), apperror.KindRateLimited},
		{"other", errors.New("connection refused"), apperror.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pe *apperror.ProviderError
			require.ErrorAs(t, Classify(tt.err), &pe)
			assert.Equal(t, tt.want, pe.Kind)
		})
	}
}

func TestClassify_PassesThroughProviderError(t *testing.T) {
	orig := SafetyBlocked("SAFETY")
	assert.Same(t, orig, Classify(orig))
	assert.Nil(t, Classify(nil))
}

type slowProvider struct{}

func (slowProvider) Chat(ctx context.Context, _ []Message, _ ...Option) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s slowProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return s.Chat(ctx, nil, opts...)
}

func TestWithTimeout_ReportsTimeoutKind(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), "hello")

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperror.KindTimeout, pe.Kind)
}

func TestNewOptions_Defaults(t *testing.T) {
	o := NewOptions()
	assert.Equal(t, 0.7, o.Temperature)

	o = NewOptions(WithTemperature(0), WithModel("m"))
	assert.Equal(t, 0.0, o.Temperature)
	assert.Equal(t, "m", o.Model)
}
