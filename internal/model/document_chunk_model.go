package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Source     string            `gorm:"type:varchar(255);not null;index"`
	Content    string            `gorm:"type:text;not null"`
	Embedding  pgvector.Vector   `gorm:"type:vector(768)"` // embedding.Dimension
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	ChunkIndex int               `gorm:"default:0"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
