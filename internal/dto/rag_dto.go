package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	Question  string    `json:"question" validate:"required,max=2000"`
	PatientId uuid.UUID `json:"patient_id" validate:"required"`
}

type AskResponse struct {
	Id            uuid.UUID `json:"id"`
	Answer        string    `json:"answer"`
	FragmentCount int       `json:"fragment_count"`
	Grounded      bool      `json:"grounded"`
}

// IngestDocumentRequest with Replace set drops the fragments previously
// ingested under Source before storing the new ones.
type IngestDocumentRequest struct {
	Source  string `json:"source" validate:"required,max=255"`
	Text    string `json:"text" validate:"required"`
	Replace bool   `json:"replace"`
}

type IngestDocumentResponse struct {
	Source   string `json:"source"`
	Chunks   int    `json:"chunks"`
	Queued   bool   `json:"queued"`
	Replaced bool   `json:"replaced"`
}

// PublishIngestDocumentMessage is the payload of the background ingestion queue.
type PublishIngestDocumentMessage struct {
	Source  string `json:"source"`
	Text    string `json:"text"`
	Replace bool   `json:"replace"`
}

type ConversationResponse struct {
	Id        uuid.UUID `json:"id"`
	PatientId uuid.UUID `json:"patient_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
