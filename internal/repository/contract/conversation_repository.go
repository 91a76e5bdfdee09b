package contract

import (
	"context"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/specification"
)

type ConversationRepository interface {
	Create(ctx context.Context, record *entity.ConversationRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
