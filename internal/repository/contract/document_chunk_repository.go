package contract

import (
	"context"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/specification"
)

type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type DocumentChunkRepository interface {
	// UpsertBulk inserts chunks and overwrites existing rows with the same id.
	UpsertBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredDocumentChunk, error)
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
