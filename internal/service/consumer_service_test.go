package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/pkg/apperror"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingDocumentService fails every Ingest with err and counts attempts.
type failingDocumentService struct {
	err   error
	calls atomic.Int32
}

func (f *failingDocumentService) Ingest(context.Context, *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	f.calls.Add(1)
	return nil, f.err
}

func (f *failingDocumentService) Enqueue(context.Context, *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	return nil, errors.New("not used")
}

func startConsumer(t *testing.T, docs IDocumentService, policy RetryPolicy) (*gochannel.GoChannel, *recordingLogger) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	log := &recordingLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, NewConsumerService(pubSub, ingestTopic, docs, log, policy, nil).Consume(ctx))
	return pubSub, log
}

func publishIngest(t *testing.T, pubSub *gochannel.GoChannel) {
	t.Helper()
	payload := []byte(`{"source":"flu.txt","text":"Rest and fluids."}`)
	require.NoError(t, pubSub.Publish(ingestTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func TestConsumerService_RateLimitedIsRetriedThenDropped(t *testing.T) {
	docs := &failingDocumentService{err: apperror.NewProviderError(apperror.KindRateLimited, errors.New("quota"))}
	pubSub, log := startConsumer(t, docs, RetryPolicy{MaxRetries: 2, InitialInterval: time.Millisecond})

	publishIngest(t, pubSub)

	require.Eventually(t, func() bool { return log.count("warn") == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 3, docs.calls.Load(), "first attempt plus two retries")

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 3, docs.calls.Load(), "the message is not redelivered after retries run out")
}

func TestConsumerService_PermanentFailureIsNotRetried(t *testing.T) {
	docs := &failingDocumentService{err: apperror.NewValidationError("content", "must not be empty")}
	pubSub, log := startConsumer(t, docs, RetryPolicy{MaxRetries: 5, InitialInterval: time.Millisecond})

	publishIngest(t, pubSub)

	require.Eventually(t, func() bool { return log.count("warn") == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, docs.calls.Load())
}

func TestConsumerService_UnparseablePayloadIsDropped(t *testing.T) {
	docs := &failingDocumentService{}
	pubSub, log := startConsumer(t, docs, RetryPolicy{MaxRetries: 5, InitialInterval: time.Millisecond})

	require.NoError(t, pubSub.Publish(ingestTopic, message.NewMessage(watermill.NewUUID(), []byte("{not json"))))

	require.Eventually(t, func() bool { return log.count("error") == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 0, docs.calls.Load())
}
