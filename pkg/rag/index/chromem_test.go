package index

import (
	"context"
	"strings"
	"testing"

	"ai-health-assistant-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterEmbedder maps text to letter frequencies plus a constant dimension so
// no vector is zero.
type letterEmbedder struct{}

func letters(text string) []float32 {
	v := make([]float32, 27)
	v[26] = 0.01
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			v[r-'a']++
		}
	}
	return v
}

func (letterEmbedder) Generate(_ context.Context, text string, _ string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: letters(text)}}, nil
}

func TestChromemIndex_UpsertAndRetrieve(t *testing.T) {
	ctx := context.Background()
	idx, err := NewChromemIndex("", letterEmbedder{})
	require.NoError(t, err)

	docs := []Document{
		{ID: "1", Text: "apple apple", Embedding: letters("apple apple"), Source: "fruit"},
		{ID: "2", Text: "banana", Embedding: letters("banana"), Source: "fruit", ChunkIndex: 1},
		{ID: "3", Text: "cherry", Embedding: letters("cherry"), Source: "fruit", ChunkIndex: 2},
	}
	require.NoError(t, idx.Upsert(ctx, docs))

	results, err := idx.Retrieve(ctx, "apple", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "apple apple", results[0].Text)
	assert.Equal(t, "fruit", results[0].Metadata["source"])
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestChromemIndex_SameIDDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	idx, err := NewChromemIndex("", letterEmbedder{})
	require.NoError(t, err)

	doc := Document{ID: "same", Text: "sleep hygiene", Embedding: letters("sleep hygiene")}
	require.NoError(t, idx.Upsert(ctx, []Document{doc}))
	require.NoError(t, idx.Upsert(ctx, []Document{doc}))

	results, err := idx.Retrieve(ctx, "sleep", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1, "k is capped at the collection size")
}

func TestChromemIndex_EmptyCollection(t *testing.T) {
	idx, err := NewChromemIndex("", letterEmbedder{})
	require.NoError(t, err)

	results, err := idx.Retrieve(context.Background(), "anything", 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
