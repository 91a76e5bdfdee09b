package index

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

// blockingIndex waits for ctx and then fails the way a cancelled SQL query
// does: an opaque error wrapped as an unknown provider failure.
type blockingIndex struct{}

func (blockingIndex) Upsert(ctx context.Context, _ []Document) error {
	<-ctx.Done()
	return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("upsert chunks: %w", errors.New("canceling statement due to user request")))
}

func (blockingIndex) Replace(ctx context.Context, _ string, docs []Document) error {
	return blockingIndex{}.Upsert(ctx, docs)
}

func (blockingIndex) Retrieve(ctx context.Context, _ string, _ int) ([]Result, error) {
	<-ctx.Done()
	return nil, apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("similarity search: %w", errors.New("canceling statement due to user request")))
}

type failingIndex struct{ err error }

func (f failingIndex) Upsert(context.Context, []Document) error { return f.err }

func (f failingIndex) Replace(context.Context, string, []Document) error { return f.err }

func (f failingIndex) Retrieve(context.Context, string, int) ([]Result, error) { return nil, f.err }

func TestWithTimeout_RetrieveReportsTimeoutKind(t *testing.T) {
	idx := WithTimeout(blockingIndex{}, 10*time.Millisecond)

	_, err := idx.Retrieve(context.Background(), "headache", 4)

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperror.KindTimeout, pe.Kind)
}

func TestWithTimeout_UpsertReportsTimeoutKind(t *testing.T) {
	idx := WithTimeout(blockingIndex{}, 10*time.Millisecond)

	err := idx.Upsert(context.Background(), []Document{{ID: "x", Text: "t"}})

	var pe *apperror.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, apperror.KindTimeout, pe.Kind)
}

func TestWithTimeout_KeepsFastFailures(t *testing.T) {
	cause := apperror.NewProviderError(apperror.KindRateLimited, errors.New("quota"))
	idx := WithTimeout(failingIndex{err: cause}, time.Second)

	_, err := idx.Retrieve(context.Background(), "q", 4)
	assert.Same(t, cause, err)
}
