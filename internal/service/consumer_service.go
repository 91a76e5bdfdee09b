package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/apperror"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

const consumerModule = "ConsumerService"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// RetryPolicy bounds how often a transiently failing ingestion is attempted
// before the message is dropped. Delays double up to one minute.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
}

type consumerService struct {
	subscriber      message.Subscriber
	topicName       string
	documentService IDocumentService
	logger          logger.ILogger
	retry           RetryPolicy
	routerLogger    watermill.LoggerAdapter
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	documentService IDocumentService,
	log logger.ILogger,
	retry RetryPolicy,
	routerLogger watermill.LoggerAdapter,
) IConsumerService {
	if routerLogger == nil {
		routerLogger = watermill.NopLogger{}
	}
	return &consumerService{
		subscriber:      subscriber,
		topicName:       topicName,
		documentService: documentService,
		logger:          log,
		retry:           retry,
		routerLogger:    routerLogger,
	}
}

// Consume starts the ingestion router and returns once it is subscribed.
// The router stops when ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	router, err := message.NewRouter(message.RouterConfig{}, cs.routerLogger)
	if err != nil {
		return err
	}

	router.AddMiddleware(
		cs.dropFailed,
		middleware.Retry{
			MaxRetries:      cs.retry.MaxRetries,
			InitialInterval: cs.retry.InitialInterval,
			MaxInterval:     time.Minute,
			Multiplier:      2,
			ShouldRetry:     func(p middleware.RetryParams) bool { return retryable(p.Err) },
			Logger:          cs.routerLogger,
		}.Middleware,
		middleware.Recoverer,
	)

	router.AddNoPublisherHandler("ingest_document", cs.topicName, cs.subscriber, func(msg *message.Message) error {
		return cs.processMessage(ctx, msg)
	})

	runErr := make(chan error, 1)
	go func() {
		runErr <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
		return nil
	case err := <-runErr:
		return err
	}
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) error {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		return nil // never parses, drop it
	}

	_, err := cs.documentService.Ingest(ctx, &dto.IngestDocumentRequest{
		Source:  payload.Source,
		Text:    payload.Text,
		Replace: payload.Replace,
	})
	return err
}

// dropFailed acks whatever the retry middleware gave up on, so a poisoned
// message is never redelivered in a loop.
func (cs *consumerService) dropFailed(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		produced, err := h(msg)
		if err != nil {
			cs.logger.Warn(consumerModule, "Dropping ingestion message", map[string]interface{}{
				"message_uuid": msg.UUID,
				"retryable":    retryable(err),
				"error":        err.Error(),
			})
		}
		return produced, nil
	}
}

// retryable reports transient provider failures. Anything else would fail
// the same way again (the failure is already logged by the document service).
func retryable(err error) bool {
	var pe *apperror.ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == apperror.KindTimeout || pe.Kind == apperror.KindRateLimited
}
