package index

import "context"

// Document is one embedded fragment ready to be stored.
type Document struct {
	ID         string
	Text       string
	Embedding  []float32
	Source     string
	ChunkIndex int
	Metadata   map[string]string
}

// Result is one retrieved fragment. Score is a cosine similarity.
type Result struct {
	ID       string
	Text     string
	Score    float32
	Metadata map[string]string
}

// Index is the similarity index used by grounded retrieval and ingestion.
// Implementations must be safe for concurrent use and return
// *apperror.ProviderError on failure.
type Index interface {
	Upsert(ctx context.Context, docs []Document) error
	// Replace drops every fragment previously stored for source and stores
	// docs in their place. This is the only way fragments are deleted.
	Replace(ctx context.Context, source string, docs []Document) error
	Retrieve(ctx context.Context, query string, k int) ([]Result, error)
}
