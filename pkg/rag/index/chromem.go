package index

import (
	"context"
	"fmt"
	"strconv"

	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/embedding"

	"github.com/philippgille/chromem-go"
)

const DefaultCollection = "health_documents"

// ChromemIndex is an embedded, optionally persistent, alternative to pgvector
// for single-node deployments.
type ChromemIndex struct {
	collection *chromem.Collection
}

var _ Index = (*ChromemIndex)(nil)

// NewChromemIndex opens a persistent database at path, or an in-memory one
// when path is empty.
func NewChromemIndex(path string, embedder embedding.EmbeddingProvider) (*ChromemIndex, error) {
	var (
		db  *chromem.DB
		err error
	)
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, true)
		if err != nil {
			return nil, fmt.Errorf("open chromem db at %s: %w", path, err)
		}
	}

	embed := func(ctx context.Context, text string) ([]float32, error) {
		resp, err := embedder.Generate(ctx, text, embedding.TaskRetrievalQuery)
		if err != nil {
			return nil, err
		}
		return resp.Embedding.Values, nil
	}

	collection, err := db.GetOrCreateCollection(DefaultCollection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("getting/creating collection %s: %w", DefaultCollection, err)
	}

	return &ChromemIndex{collection: collection}, nil
}

func (c *ChromemIndex) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, d := range docs {
		metadata := map[string]string{
			"source":      d.Source,
			"chunk_index": strconv.Itoa(d.ChunkIndex),
		}
		for k, v := range d.Metadata {
			metadata[k] = v
		}
		chromemDocs[i] = chromem.Document{
			ID:        d.ID,
			Content:   d.Text,
			Metadata:  metadata,
			Embedding: d.Embedding,
		}
	}

	// Embeddings are precomputed, so one goroutine is enough
	if err := c.collection.AddDocuments(ctx, chromemDocs, 1); err != nil {
		return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("adding documents: %w", err))
	}
	return nil
}

// Replace is not atomic: chromem has no transactions, so a failure after the
// delete leaves the source empty until the next successful ingest.
func (c *ChromemIndex) Replace(ctx context.Context, source string, docs []Document) error {
	if source == "" {
		return apperror.NewValidationError("source", "must not be empty")
	}
	if err := c.collection.Delete(ctx, map[string]string{"source": source}, nil); err != nil {
		return apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("deleting documents of %s: %w", source, err))
	}
	return c.Upsert(ctx, docs)
}

func (c *ChromemIndex) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	// chromem requires nResults <= document count
	count := c.collection.Count()
	if count == 0 || k <= 0 {
		return []Result{}, nil
	}
	if k > count {
		k = count
	}

	found, err := c.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, apperror.AsProvider("Retrieve", fmt.Errorf("querying collection: %w", err))
	}

	results := make([]Result, len(found))
	for i, r := range found {
		results[i] = Result{
			ID:       r.ID,
			Text:     r.Content,
			Score:    r.Similarity,
			Metadata: r.Metadata,
		}
	}
	return results, nil
}
