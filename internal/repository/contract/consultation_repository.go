package contract

import (
	"context"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/specification"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	// FindOne returns nil, nil when no record matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Consultation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Consultation, error)
}
