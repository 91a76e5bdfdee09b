package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/events"
	"ai-health-assistant-be/pkg/rag/ingest"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ingestTopic = "INGEST_DOCUMENT_TEST"

func newDocumentService(idx *stubIndex, pubSub *gochannel.GoChannel, pub *recordingPublisher) IDocumentService {
	return NewDocumentService(
		ingest.NewIngester(idx, fakeEmbedder{}, 100, 20),
		NewPublisherService(ingestTopic, pubSub),
		pub,
		&recordingLogger{},
	)
}

func TestDocumentService_Ingest(t *testing.T) {
	idx := &stubIndex{}
	pub := &recordingPublisher{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := newDocumentService(idx, pubSub, pub)
	text := strings.Join([]string{
		"Regular walking improves joint mobility and lifts mood.",
		"Start with ten minutes a day and add five minutes each week.",
		"Stretch the calves and hamstrings gently after every walk.",
		"Stop and rest if pain becomes sharp rather than dull.",
		"Drink water before and after longer walks in warm weather.",
	}, " ")

	res, err := svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Source: "walking.txt", Text: text})
	require.NoError(t, err)
	assert.Greater(t, res.Chunks, 1)
	assert.Equal(t, res.Chunks, idx.upsertedCount())
	assert.Equal(t, []string{events.TypeDocumentIngested}, pub.types())

	_, err = svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Source: "empty.txt", Text: "  "})
	assert.True(t, apperror.IsValidation(err))
}

func TestDocumentService_EnqueueIsConsumed(t *testing.T) {
	idx := &stubIndex{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := newDocumentService(idx, pubSub, &recordingPublisher{})
	consumer := NewConsumerService(pubSub, ingestTopic, svc, &recordingLogger{}, RetryPolicy{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	res, err := svc.Enqueue(ctx, &dto.IngestDocumentRequest{Source: "sleep.txt", Text: "Keep a regular sleep schedule."})
	require.NoError(t, err)
	assert.True(t, res.Queued)

	require.Eventually(t, func() bool { return idx.upsertedCount() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestDocumentService_IngestWithReplace(t *testing.T) {
	idx := &stubIndex{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	svc := newDocumentService(idx, pubSub, &recordingPublisher{})

	_, err := svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Source: "diet.txt", Text: "Eat vegetables with every meal."})
	require.NoError(t, err)

	res, err := svc.Ingest(context.Background(), &dto.IngestDocumentRequest{Source: "diet.txt", Text: "Limit salt to one teaspoon a day.", Replace: true})
	require.NoError(t, err)

	assert.True(t, res.Replaced)
	assert.Equal(t, []string{"diet.txt"}, idx.replacedSources())
	require.Equal(t, 1, idx.upsertedCount())
	assert.Contains(t, idx.upserted[0].Text, "salt")
}

func TestDocumentService_EnqueuedReplaceReachesIndex(t *testing.T) {
	idx := &stubIndex{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := newDocumentService(idx, pubSub, &recordingPublisher{})
	consumer := NewConsumerService(pubSub, ingestTopic, svc, &recordingLogger{}, RetryPolicy{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	_, err := svc.Enqueue(ctx, &dto.IngestDocumentRequest{Source: "sleep.txt", Text: "Avoid screens before bed.", Replace: true})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(idx.replacedSources()) == 1 }, 2*time.Second, 10*time.Millisecond)
}
