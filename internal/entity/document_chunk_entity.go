package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID
	Source     string
	Content    string
	Embedding  []float32
	Metadata   map[string]string
	ChunkIndex int
	CreatedAt  time.Time
}
