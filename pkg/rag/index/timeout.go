package index

import (
	"context"
	"errors"
	"time"

	"ai-health-assistant-be/pkg/apperror"
)

type timeoutIndex struct {
	next    Index
	timeout time.Duration
}

// WithTimeout bounds every call on idx by d. A zero duration
// returns idx as is.
func WithTimeout(idx Index, d time.Duration) Index {
	if d <= 0 {
		return idx
	}
	return &timeoutIndex{next: idx, timeout: d}
}

func (t *timeoutIndex) Upsert(ctx context.Context, docs []Document) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return deadlineAsTimeout(ctx, t.next.Upsert(ctx, docs))
}

func (t *timeoutIndex) Replace(ctx context.Context, source string, docs []Document) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return deadlineAsTimeout(ctx, t.next.Replace(ctx, source, docs))
}

func (t *timeoutIndex) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	results, err := t.next.Retrieve(ctx, query, k)
	if err != nil {
		return nil, deadlineAsTimeout(ctx, err)
	}
	return results, nil
}

// deadlineAsTimeout reports any failure that happened after ctx expired as a
// Timeout, whatever the backend made of the cancelled query.
func deadlineAsTimeout(ctx context.Context, err error) error {
	if err == nil || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}
	var pe *apperror.ProviderError
	if errors.As(err, &pe) && pe.Kind == apperror.KindTimeout {
		return err
	}
	return apperror.NewProviderError(apperror.KindTimeout, err)
}
