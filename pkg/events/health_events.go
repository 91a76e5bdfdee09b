package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeConsultationCompleted = "consultation.completed"
	TypeProgressSubmitted     = "progress.submitted"
	TypeConversationRecorded  = "conversation.recorded"
	TypeDocumentIngested      = "document.ingested"
)

// Payloads carry identifiers and sizes only, never generated text.

func ConsultationCompleted(id, userID uuid.UUID) Event {
	return BaseEvent{
		Type:       TypeConsultationCompleted,
		OccurredAt: time.Now(),
		Data: map[string]interface{}{
			"consultation_id": id.String(),
			"user_id":         userID.String(),
		},
	}
}

func ProgressSubmitted(id, userID, consultationID uuid.UUID, mood float64) Event {
	return BaseEvent{
		Type:       TypeProgressSubmitted,
		OccurredAt: time.Now(),
		Data: map[string]interface{}{
			"entry_id":        id.String(),
			"user_id":         userID.String(),
			"consultation_id": consultationID.String(),
			"mood_rating":     mood,
		},
	}
}

func ConversationRecorded(id, userID, patientID uuid.UUID, fragments int) Event {
	return BaseEvent{
		Type:       TypeConversationRecorded,
		OccurredAt: time.Now(),
		Data: map[string]interface{}{
			"record_id":      id.String(),
			"user_id":        userID.String(),
			"patient_id":     patientID.String(),
			"fragment_count": fragments,
		},
	}
}

func DocumentIngested(source string, chunks int) Event {
	return BaseEvent{
		Type:       TypeDocumentIngested,
		OccurredAt: time.Now(),
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
	}
}
