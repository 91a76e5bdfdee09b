package embedding

import (
	"context"
	"testing"
	"time"

	"ai-health-assistant-be/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hangingProvider struct{}

func (hangingProvider) Generate(ctx context.Context, _ string, _ string) (*EmbeddingResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout_ReportsTimeoutKind(t *testing.T) {
	p := WithTimeout(hangingProvider{}, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), "hello", TaskRetrievalQuery)

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperror.KindTimeout, pe.Kind)
}

func TestWithTimeout_ZeroDurationIsPassthrough(t *testing.T) {
	inner := &countingProvider{}
	assert.Same(t, inner, WithTimeout(inner, 0))
}
