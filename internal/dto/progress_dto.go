package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitProgressRequest struct {
	ConsultationId   uuid.UUID  `json:"consultation_id" validate:"required"`
	Description      string     `json:"description" validate:"required,max=2000"`
	MoodRating       float64    `json:"mood_rating" validate:"gte=0,lte=10"`
	SymptomsImproved string     `json:"symptoms_improved" validate:"max=2000"`
	Date             *time.Time `json:"date"`
}

type ProgressEntryResponse struct {
	Id               uuid.UUID `json:"id"`
	ConsultationId   uuid.UUID `json:"consultation_id"`
	Date             time.Time `json:"date"`
	Description      string    `json:"description"`
	MoodRating       float64   `json:"mood_rating"`
	SymptomsImproved string    `json:"symptoms_improved"`
	AiFeedback       string    `json:"ai_feedback"`
}

type MoodTrendPoint struct {
	Date time.Time `json:"date"`
	Mood float64   `json:"mood"`
}

type ProgressSummaryResponse struct {
	Message      string                 `json:"message,omitempty"`
	TotalEntries int                    `json:"total_entries"`
	AverageMood  float64                `json:"average_mood"`
	MoodTrend    []MoodTrendPoint       `json:"mood_trend"`
	LatestEntry  *ProgressEntryResponse `json:"latest_entry,omitempty"`
}
