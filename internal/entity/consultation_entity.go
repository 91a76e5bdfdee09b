package entity

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	ProblemDescription string
	Analysis           string
	Recommendations    string
	Exercises          string
	Disclaimer         string
	AiRecommendation   string
	CreatedAt          time.Time
}
