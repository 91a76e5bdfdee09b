package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationRecord is one grounded question/answer exchange. Append-only.
type ConversationRecord struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	PatientId     uuid.UUID
	Question      string
	Answer        string
	FragmentCount int
	CreatedAt     time.Time
}
