package service

import (
	"context"

	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/events"
	pktNats "ai-health-assistant-be/pkg/nats"
)

const auditModule = "AuditService"

// EventSubscriber is implemented by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

// AuditService writes every domain event to the audit log.
type AuditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewAuditService(sub EventSubscriber, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: sub,
		logger:     log,
	}
}

func (s *AuditService) Start() error {
	err := s.subscriber.Subscribe(pktNats.Subject(">"), "audit-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error(auditModule, "Failed to start audit subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info(auditModule, "Audit service started", nil)
	return nil
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	details := make(map[string]interface{}, len(event.Payload())+2)
	for k, v := range event.Payload() {
		details[k] = v
	}
	details["type"] = event.EventType()
	details["occurred_at"] = event.Timestamp()

	s.logger.Info(auditModule, "Domain event", details)
	return nil
}
