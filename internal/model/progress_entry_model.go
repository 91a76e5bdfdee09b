package model

import (
	"time"

	"github.com/google/uuid"
)

type ProgressEntry struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_user_consultation"`
	ConsultationId   uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_user_consultation"`
	Date             time.Time `gorm:"not null;index"`
	Description      string    `gorm:"type:text"`
	MoodRating       float64   `gorm:"not null"`
	SymptomsImproved string    `gorm:"type:text"`
	AiFeedback       string    `gorm:"type:text"`
}

func (ProgressEntry) TableName() string {
	return "progress_entries"
}
