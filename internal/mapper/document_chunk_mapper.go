package mapper

import (
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	metadata := make(map[string]string, len(c.Metadata))
	for k, v := range c.Metadata {
		if s, ok := v.(string); ok {
			metadata[k] = s
		}
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		Source:     c.Source,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		Metadata:   metadata,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	metadata := datatypes.JSONMap{}
	for k, v := range c.Metadata {
		metadata[k] = v
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		Source:     c.Source,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		Metadata:   metadata,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(items []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(items))
	for i, c := range items {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(items []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(items))
	for i, c := range items {
		models[i] = m.ToModel(c)
	}
	return models
}
