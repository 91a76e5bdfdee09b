package service

import (
	"context"

	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/events"
)

// publish emits a domain event after a successful commit. Delivery failures
// are logged and never fail the request that produced the event.
func publish(ctx context.Context, p events.Publisher, log logger.ILogger, module string, event events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
