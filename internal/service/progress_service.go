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
	"ai-health-assistant-be/pkg/events"
	"ai-health-assistant-be/pkg/progress"

	"github.com/google/uuid"
)

const progressModule = "ProgressService"

type IProgressService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitProgressRequest) (*dto.ProgressEntryResponse, error)
	GetByConsultation(ctx context.Context, userId uuid.UUID, consultationId uuid.UUID) ([]*dto.ProgressEntryResponse, error)
	Summary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error)
}

type progressService struct {
	uowFactory unitofwork.RepositoryFactory
	feedback   *progress.FeedbackService
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewProgressService(
	uowFactory unitofwork.RepositoryFactory,
	feedback *progress.FeedbackService,
	publisher events.Publisher,
	log logger.ILogger,
) IProgressService {
	return &progressService{
		uowFactory: uowFactory,
		feedback:   feedback,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *progressService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitProgressRequest) (*dto.ProgressEntryResponse, error) {
	newEntry := progress.NewEntry{
		Description:      req.Description,
		MoodRating:       req.MoodRating,
		SymptomsImproved: req.SymptomsImproved,
	}
	if err := newEntry.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.ensureConsultationOwned(ctx, uow, userId, req.ConsultationId); err != nil {
		return nil, err
	}

	// Only the most recent window is read; the prompt never sees older entries.
	specs := append([]specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByConsultationID{ConsultationID: req.ConsultationId},
	}, specification.MostRecent("date", progress.HistoryWindow)...)
	previous, err := uow.ProgressEntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewPersistenceError("progress.find", err)
	}

	history := make([]progress.HistoryItem, 0, len(previous))
	for _, p := range previous {
		history = append(history, progress.HistoryItem{
			Date:     p.Date,
			Mood:     p.MoodRating,
			Symptoms: p.SymptomsImproved,
		})
	}

	feedback, err := s.feedback.Feedback(ctx, history, newEntry)
	if err != nil {
		s.logger.Warn(progressModule, "Progress feedback failed", map[string]interface{}{
			"user_id":         userId.String(),
			"consultation_id": req.ConsultationId.String(),
			"error":           err.Error(),
		})
		return nil, err
	}

	date := time.Now()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	entry := entity.ProgressEntry{
		Id:               uuid.New(),
		UserId:           userId,
		ConsultationId:   req.ConsultationId,
		Date:             date,
		Description:      req.Description,
		MoodRating:       req.MoodRating,
		SymptomsImproved: req.SymptomsImproved,
		AiFeedback:       feedback,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, s.persistFailed(userId, feedback, "begin", err)
	}
	defer uow.Rollback()

	if err := uow.ProgressEntryRepository().Create(ctx, &entry); err != nil {
		return nil, s.persistFailed(userId, feedback, "progress.create", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, s.persistFailed(userId, feedback, "commit", err)
	}

	publish(ctx, s.publisher, s.logger, progressModule,
		events.ProgressSubmitted(entry.Id, userId, entry.ConsultationId, entry.MoodRating))

	return toProgressEntryResponse(&entry), nil
}

func (s *progressService) GetByConsultation(ctx context.Context, userId uuid.UUID, consultationId uuid.UUID) ([]*dto.ProgressEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.ensureConsultationOwned(ctx, uow, userId, consultationId); err != nil {
		return nil, err
	}

	entries, err := uow.ProgressEntryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByConsultationID{ConsultationID: consultationId},
		specification.OrderBy{Field: "date", Desc: true},
	)
	if err != nil {
		return nil, apperror.NewPersistenceError("progress.find", err)
	}

	result := make([]*dto.ProgressEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toProgressEntryResponse(e))
	}
	return result, nil
}

func (s *progressService) Summary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.ProgressEntryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.NewPersistenceError("progress.find", err)
	}

	points := make([]progress.MoodPoint, len(entries))
	for i, e := range entries {
		points[i] = progress.MoodPoint{Date: e.Date, Mood: e.MoodRating}
	}
	summary := progress.Summarize(points)

	res := &dto.ProgressSummaryResponse{
		TotalEntries: summary.Count,
		AverageMood:  summary.AverageMood,
		MoodTrend:    make([]dto.MoodTrendPoint, 0, len(summary.Trend)),
	}
	if summary.Empty {
		res.Message = summary.Message
		return res, nil
	}
	for _, p := range summary.Trend {
		res.MoodTrend = append(res.MoodTrend, dto.MoodTrendPoint{Date: p.Date, Mood: p.Mood})
	}
	res.LatestEntry = toProgressEntryResponse(entries[summary.LatestIndex])
	return res, nil
}

func (s *progressService) ensureConsultationOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, consultationId uuid.UUID) error {
	c, err := uow.ConsultationRepository().FindOne(ctx,
		specification.ByID{ID: consultationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.NewPersistenceError("consultation.find", err)
	}
	if c == nil {
		return apperror.NewNotFoundError("consultation", consultationId.String())
	}
	return nil
}

func (s *progressService) persistFailed(userId uuid.UUID, feedback, op string, err error) error {
	s.logger.Error(progressModule, "Failed to persist progress entry, generated feedback discarded", map[string]interface{}{
		"user_id":  userId.String(),
		"op":       op,
		"error":    err.Error(),
		"feedback": feedback,
	})
	return apperror.NewPersistenceError(op, err)
}

func toProgressEntryResponse(e *entity.ProgressEntry) *dto.ProgressEntryResponse {
	return &dto.ProgressEntryResponse{
		Id:               e.Id,
		ConsultationId:   e.ConsultationId,
		Date:             e.Date,
		Description:      e.Description,
		MoodRating:       e.MoodRating,
		SymptomsImproved: e.SymptomsImproved,
		AiFeedback:       e.AiFeedback,
	}
}
