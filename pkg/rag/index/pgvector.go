package index

import (
	"context"
	"fmt"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/unitofwork"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

// PgVectorIndex stores fragments in the document_chunks table and searches
// them with pgvector cosine distance.
type PgVectorIndex struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
}

var _ Index = (*PgVectorIndex)(nil)

func NewPgVectorIndex(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider) *PgVectorIndex {
	return &PgVectorIndex{uowFactory: uowFactory, embedder: embedder}
}

func (p *PgVectorIndex) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	return p.write(ctx, "", docs)
}

// Replace deletes and re-inserts the source in one transaction, so readers
// see either the old or the new fragments.
func (p *PgVectorIndex) Replace(ctx context.Context, source string, docs []Document) error {
	if source == "" {
		return apperror.NewValidationError("source", "must not be empty")
	}
	return p.write(ctx, source, docs)
}

// write upserts docs, first clearing replaceSource when it is set.
func (p *PgVectorIndex) write(ctx context.Context, replaceSource string, docs []Document) error {
	chunks := make([]*entity.DocumentChunk, len(docs))
	for i, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return apperror.NewValidationError("id", fmt.Sprintf("document id %q is not a uuid", d.ID))
		}
		chunks[i] = &entity.DocumentChunk{
			Id:         id,
			Source:     d.Source,
			Content:    d.Text,
			Embedding:  d.Embedding,
			Metadata:   d.Metadata,
			ChunkIndex: d.ChunkIndex,
		}
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.NewProviderError(apperror.KindUnknown, err)
	}
	defer uow.Rollback()

	if replaceSource != "" {
		if err := uow.DocumentChunkRepository().DeleteBySource(ctx, replaceSource); err != nil {
			return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("delete chunks of %s: %w", replaceSource, err))
		}
	}
	if err := uow.DocumentChunkRepository().UpsertBulk(ctx, chunks); err != nil {
		return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("upsert chunks: %w", err))
	}
	if err := uow.Commit(); err != nil {
		return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("commit chunks: %w", err))
	}
	return nil
}

func (p *PgVectorIndex) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	emb, err := p.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, apperror.AsProvider("Embed", err)
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilar(ctx, emb.Embedding.Values, k)
	if err != nil {
		return nil, apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("similarity search: %w", err))
	}

	results := make([]Result, len(scored))
	for i, s := range scored {
		results[i] = Result{
			ID:       s.Chunk.Id.String(),
			Text:     s.Chunk.Content,
			Score:    float32(s.Similarity),
			Metadata: s.Chunk.Metadata,
		}
	}
	return results, nil
}
