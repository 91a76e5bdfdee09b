package ingest

import (
	"context"
	"strings"

	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/embedding"
	"ai-health-assistant-be/pkg/rag/index"
	"ai-health-assistant-be/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultChunkSize    = 100
	DefaultChunkOverlap = 20
	embedConcurrency    = 4
)

// chunkNamespace seeds the name-based UUIDs of document chunks.
var chunkNamespace = uuid.MustParse("6f1c1f0e-8d7a-4c55-9a53-2b7f0d6c1e42")

// ChunkID derives a stable id from the source and chunk text, so ingesting
// the same source twice overwrites rather than duplicates.
func ChunkID(source, text string) string {
	return uuid.NewSHA1(chunkNamespace, []byte(source+"\x00"+text)).String()
}

type Ingester struct {
	index     index.Index
	embedder  embedding.EmbeddingProvider
	chunkSize int
	overlap   int
}

func NewIngester(idx index.Index, embedder embedding.EmbeddingProvider, chunkSize, overlap int) *Ingester {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}
	return &Ingester{
		index:     idx,
		embedder:  embedder,
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Ingest splits rawText, embeds every distinct chunk and upserts them.
// It returns the number of distinct chunks stored.
func (i *Ingester) Ingest(ctx context.Context, source, rawText string) (int, error) {
	docs, err := i.embedDocuments(ctx, source, rawText)
	if err != nil {
		return 0, err
	}
	if err := i.index.Upsert(ctx, docs); err != nil {
		return 0, apperror.AsProvider("Upsert", err)
	}
	return len(docs), nil
}

// Reindex is Ingest for a source whose content changed: fragments of the
// previous version are dropped instead of lingering next to the new ones.
// Nothing is deleted when embedding fails.
func (i *Ingester) Reindex(ctx context.Context, source, rawText string) (int, error) {
	docs, err := i.embedDocuments(ctx, source, rawText)
	if err != nil {
		return 0, err
	}
	if err := i.index.Replace(ctx, source, docs); err != nil {
		return 0, apperror.AsProvider("Replace", err)
	}
	return len(docs), nil
}

func (i *Ingester) embedDocuments(ctx context.Context, source, rawText string) ([]index.Document, error) {
	if strings.TrimSpace(source) == "" {
		return nil, apperror.NewValidationError("source", "must not be empty")
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, apperror.NewValidationError("content", "must not be empty")
	}

	docs := i.buildDocuments(source, utils.SplitText(rawText, i.chunkSize, i.overlap))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for n := range docs {
		doc := &docs[n]
		g.Go(func() error {
			resp, err := i.embedder.Generate(gctx, doc.Text, embedding.TaskRetrievalDocument)
			if err != nil {
				return apperror.AsProvider("Embed", err)
			}
			doc.Embedding = resp.Embedding.Values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (i *Ingester) buildDocuments(source string, chunks []string) []index.Document {
	seen := make(map[string]struct{}, len(chunks))
	docs := make([]index.Document, 0, len(chunks))
	for n, chunk := range chunks {
		id := ChunkID(source, chunk)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		docs = append(docs, index.Document{
			ID:         id,
			Text:       chunk,
			Source:     source,
			ChunkIndex: n,
			Metadata:   map[string]string{"source": source},
		})
	}
	return docs
}
