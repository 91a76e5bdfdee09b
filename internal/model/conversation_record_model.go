package model

import (
	"time"

	"github.com/google/uuid"
)

type ConversationRecord struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_scope"`
	PatientId     uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_scope"`
	Question      string    `gorm:"type:text;not null"`
	Answer        string    `gorm:"type:text;not null"`
	FragmentCount int       `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ConversationRecord) TableName() string {
	return "conversation_records"
}
