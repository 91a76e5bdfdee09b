package model

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID `gorm:"type:uuid;not null;index"`
	ProblemDescription string    `gorm:"type:text;not null"`
	Analysis           string    `gorm:"type:text"`
	Recommendations    string    `gorm:"type:text"`
	Exercises          string    `gorm:"type:text"`
	Disclaimer         string    `gorm:"type:text"`
	AiRecommendation   string    `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
}

func (Consultation) TableName() string {
	return "consultations"
}
