package service

import (
	"context"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/internal/repository/specification"
	"ai-health-assistant-be/internal/repository/unitofwork"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/consultation"
	"ai-health-assistant-be/pkg/events"

	"github.com/google/uuid"
)

const consultationModule = "ConsultationService"

type IConsultationService interface {
	Consult(ctx context.Context, userId uuid.UUID, req *dto.ConsultRequest) (*dto.ConsultResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ConsultationListItem, error)
	Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error)
}

type consultationService struct {
	uowFactory unitofwork.RepositoryFactory
	pipeline   *consultation.Pipeline
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewConsultationService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *consultation.Pipeline,
	publisher events.Publisher,
	log logger.ILogger,
) IConsultationService {
	return &consultationService{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		publisher:  publisher,
		logger:     log,
	}
}

// Consult runs the full pipeline and stores the consultation. Nothing is
// stored if any stage fails.
func (s *consultationService) Consult(ctx context.Context, userId uuid.UUID, req *dto.ConsultRequest) (*dto.ConsultResponse, error) {
	state, err := s.pipeline.Run(ctx, req.ProblemDescription)
	if err != nil {
		if !apperror.IsValidation(err) {
			s.logger.Warn(consultationModule, "Consultation pipeline failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	record := entity.Consultation{
		Id:                 uuid.New(),
		UserId:             userId,
		ProblemDescription: state.Problem,
		Analysis:           state.Analysis,
		Recommendations:    state.Recommendations,
		Exercises:          state.Exercises,
		Disclaimer:         state.Disclaimer,
		AiRecommendation:   state.Document(),
		CreatedAt:          time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, s.persistFailed(userId, record.AiRecommendation, "begin", err)
	}
	defer uow.Rollback()

	if err := uow.ConsultationRepository().Create(ctx, &record); err != nil {
		return nil, s.persistFailed(userId, record.AiRecommendation, "consultation.create", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, s.persistFailed(userId, record.AiRecommendation, "commit", err)
	}

	publish(ctx, s.publisher, s.logger, consultationModule, events.ConsultationCompleted(record.Id, userId))

	return &dto.ConsultResponse{
		Id:               record.Id,
		Analysis:         record.Analysis,
		Recommendations:  record.Recommendations,
		Exercises:        record.Exercises,
		Disclaimer:       record.Disclaimer,
		AiRecommendation: record.AiRecommendation,
		CreatedAt:        record.CreatedAt,
	}, nil
}

func (s *consultationService) persistFailed(userId uuid.UUID, content, op string, err error) error {
	s.logger.Error(consultationModule, "Failed to persist consultation, generated content discarded", map[string]interface{}{
		"user_id": userId.String(),
		"op":      op,
		"error":   err.Error(),
		"content": content,
	})
	return apperror.NewPersistenceError(op, err)
}

func (s *consultationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ConsultationListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	consultations, err := uow.ConsultationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewPersistenceError("consultation.find", err)
	}

	result := make([]*dto.ConsultationListItem, 0, len(consultations))
	for _, c := range consultations {
		result = append(result, &dto.ConsultationListItem{
			Id:                 c.Id,
			ProblemDescription: c.ProblemDescription,
			AiRecommendation:   c.AiRecommendation,
			CreatedAt:          c.CreatedAt,
		})
	}
	return result, nil
}

func (s *consultationService) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	text, err := s.pipeline.Recommend(ctx, req.CurrentStatus)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendationResponse{Recommendation: text}, nil
}
