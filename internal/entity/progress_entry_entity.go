package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProgressEntry struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	ConsultationId   uuid.UUID
	Date             time.Time
	Description      string
	MoodRating       float64
	SymptomsImproved string
	AiFeedback       string
}
