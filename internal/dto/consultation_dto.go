package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConsultRequest struct {
	ProblemDescription string `json:"problem_description" validate:"required,max=4000"`
}

type ConsultResponse struct {
	Id               uuid.UUID `json:"id"`
	Analysis         string    `json:"analysis"`
	Recommendations  string    `json:"recommendations"`
	Exercises        string    `json:"exercises"`
	Disclaimer       string    `json:"disclaimer"`
	AiRecommendation string    `json:"ai_recommendation"`
	CreatedAt        time.Time `json:"created_at"`
}

type ConsultationListItem struct {
	Id                 uuid.UUID `json:"id"`
	ProblemDescription string    `json:"problem_description"`
	AiRecommendation   string    `json:"ai_recommendation"`
	CreatedAt          time.Time `json:"created_at"`
}

type RecommendationRequest struct {
	CurrentStatus string `json:"current_status" validate:"required,max=2000"`
}

type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}
