package contract

import (
	"context"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/specification"
)

type ProgressEntryRepository interface {
	Create(ctx context.Context, entry *entity.ProgressEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProgressEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
