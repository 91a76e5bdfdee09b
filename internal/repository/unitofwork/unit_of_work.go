package unitofwork

import (
	"context"

	"ai-health-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConsultationRepository() contract.ConsultationRepository
	ProgressEntryRepository() contract.ProgressEntryRepository
	ConversationRepository() contract.ConversationRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}
