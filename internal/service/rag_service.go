package service

import (
	"context"
	"strings"
	"time"

	"ai-health-assistant-be/internal/constant"
	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/internal/repository/specification"
	"ai-health-assistant-be/internal/repository/unitofwork"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/events"
	"ai-health-assistant-be/pkg/llm"
	"ai-health-assistant-be/pkg/rag/index"
	"ai-health-assistant-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

const ragModule = "RagService"

type IRagService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	History(ctx context.Context, userId uuid.UUID, patientId uuid.UUID) ([]*dto.ConversationResponse, error)
}

type RagOptions struct {
	TopK        int
	Temperature float64
}

type ragService struct {
	uowFactory unitofwork.RepositoryFactory
	index      index.Index
	llm        llm.LLMProvider
	publisher  events.Publisher
	logger     logger.ILogger
	opts       RagOptions
}

func NewRagService(
	uowFactory unitofwork.RepositoryFactory,
	idx index.Index,
	llmProvider llm.LLMProvider,
	publisher events.Publisher,
	log logger.ILogger,
	opts RagOptions,
) IRagService {
	if opts.TopK <= 0 {
		opts.TopK = 4
	}
	return &ragService{
		uowFactory: uowFactory,
		index:      idx,
		llm:        llmProvider,
		publisher:  publisher,
		logger:     log,
		opts:       opts,
	}
}

// Ask answers from retrieved fragments only and records the exchange. The
// record exists iff Ask returns without error.
func (s *ragService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperror.NewValidationError("question", "must not be empty")
	}

	results, err := s.index.Retrieve(ctx, question, s.opts.TopK)
	if err != nil {
		s.logger.Error(ragModule, "Similarity search failed", map[string]interface{}{
			"user_id":    userId.String(),
			"patient_id": req.PatientId.String(),
			"error":      err.Error(),
		})
		return nil, apperror.AsProvider(constant.RagStageRetrieve, err)
	}

	var answer string
	if len(results) == 0 {
		s.logger.Info(ragModule, "No grounding material found", map[string]interface{}{
			"user_id":    userId.String(),
			"patient_id": req.PatientId.String(),
		})
		answer = constant.InsufficientGroundingAnswer
	} else {
		fragments := make([]prompt.Fragment, 0, len(results))
		for _, r := range results {
			fragments = append(fragments, prompt.Fragment{Text: r.Text, Score: r.Score})
		}

		messages := prompt.NewGroundedBuilder(question, fragments).Build()
		answer, err = s.llm.Chat(ctx, messages, llm.WithTemperature(s.opts.Temperature))
		if err != nil {
			s.logger.Error(ragModule, "Grounded generation failed", map[string]interface{}{
				"user_id":    userId.String(),
				"patient_id": req.PatientId.String(),
				"error":      err.Error(),
			})
			return nil, apperror.AsProvider(constant.RagStageGenerate, err)
		}
	}

	record := entity.ConversationRecord{
		Id:            uuid.New(),
		UserId:        userId,
		PatientId:     req.PatientId,
		Question:      question,
		Answer:        answer,
		FragmentCount: len(results),
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, s.persistFailed(&record, "begin", err)
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, &record); err != nil {
		return nil, s.persistFailed(&record, "conversation.create", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, s.persistFailed(&record, "commit", err)
	}

	publish(ctx, s.publisher, s.logger, ragModule,
		events.ConversationRecorded(record.Id, userId, record.PatientId, record.FragmentCount))

	return &dto.AskResponse{
		Id:            record.Id,
		Answer:        answer,
		FragmentCount: record.FragmentCount,
		Grounded:      record.FragmentCount > 0,
	}, nil
}

func (s *ragService) persistFailed(record *entity.ConversationRecord, op string, err error) error {
	s.logger.Error(ragModule, "Failed to record conversation, generated answer discarded", map[string]interface{}{
		"user_id":    record.UserId.String(),
		"patient_id": record.PatientId.String(),
		"op":         op,
		"error":      err.Error(),
		"question":   record.Question,
		"answer":     record.Answer,
	})
	return apperror.NewPersistenceError(op, err)
}

func (s *ragService) History(ctx context.Context, userId uuid.UUID, patientId uuid.UUID) ([]*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.NewPersistenceError("conversation.find", err)
	}

	result := make([]*dto.ConversationResponse, 0, len(records))
	for _, r := range records {
		result = append(result, &dto.ConversationResponse{
			Id:        r.Id,
			PatientId: r.PatientId,
			Question:  r.Question,
			Answer:    r.Answer,
			CreatedAt: r.CreatedAt,
		})
	}
	return result, nil
}
