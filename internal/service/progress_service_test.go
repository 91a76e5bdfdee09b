package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/repository/memory"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressFixture struct {
	store          *memory.Store
	llm            *stubLLM
	pub            *recordingPublisher
	logger         *recordingLogger
	svc            IProgressService
	userID         uuid.UUID
	consultationID uuid.UUID
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()

	f := &progressFixture{
		store:          memory.NewStore(),
		llm:            &stubLLM{respond: func(string) (string, error) { return "keep going", nil }},
		pub:            &recordingPublisher{},
		logger:         &recordingLogger{},
		userID:         uuid.New(),
		consultationID: uuid.New(),
	}
	factory := memory.NewRepositoryFactory(f.store)
	f.svc = NewProgressService(factory, progress.NewFeedbackService(f.llm, 0.7), f.pub, f.logger)

	ctx := context.Background()
	require.NoError(t, factory.NewUnitOfWork(ctx).ConsultationRepository().Create(ctx, &entity.Consultation{
		Id:                 f.consultationID,
		UserId:             f.userID,
		ProblemDescription: "knee pain",
	}))
	return f
}

func (f *progressFixture) seedEntries(t *testing.T, moods ...float64) {
	t.Helper()
	ctx := context.Background()
	uow := memory.NewRepositoryFactory(f.store).NewUnitOfWork(ctx)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, mood := range moods {
		require.NoError(t, uow.ProgressEntryRepository().Create(ctx, &entity.ProgressEntry{
			UserId:           f.userID,
			ConsultationId:   f.consultationID,
			Date:             base.AddDate(0, 0, i),
			Description:      fmt.Sprintf("day %d", i+1),
			MoodRating:       mood,
			SymptomsImproved: fmt.Sprintf("symptom-%d", i+1),
		}))
	}
}

func TestProgressService_Submit_UsesFiveMostRecentEntries(t *testing.T) {
	f := newProgressFixture(t)
	f.seedEntries(t, 1, 2, 3, 4, 5, 6, 7)

	res, err := f.svc.Submit(context.Background(), f.userID, &dto.SubmitProgressRequest{
		ConsultationId:   f.consultationID,
		Description:      "better today",
		MoodRating:       8,
		SymptomsImproved: "less swelling",
	})
	require.NoError(t, err)
	assert.Equal(t, "keep going", res.AiFeedback)

	prompt := f.llm.lastCall().messages[0].Content
	for i := 3; i <= 7; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("symptom-%d", i))
	}
	assert.NotContains(t, prompt, "symptom-1\n")
	assert.NotContains(t, prompt, "symptom-2\n")
	assert.Equal(t, 0.7, f.llm.lastCall().temperature)

	assert.Len(t, f.store.ProgressEntries(), 8)
}

func TestProgressService_Submit_UnknownConsultation(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.Submit(context.Background(), uuid.New(), &dto.SubmitProgressRequest{
		ConsultationId: f.consultationID,
		Description:    "not mine",
		MoodRating:     5,
	})
	assert.True(t, apperror.IsNotFound(err))
	assert.Zero(t, f.llm.callCount())
}

func TestProgressService_Submit_InvalidMood(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.Submit(context.Background(), f.userID, &dto.SubmitProgressRequest{
		ConsultationId: f.consultationID,
		Description:    "off the scale",
		MoodRating:     11,
	})
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, f.llm.callCount())
}

func TestProgressService_Submit_NothingStoredOnFailure(t *testing.T) {
	t.Run("provider", func(t *testing.T) {
		f := newProgressFixture(t)
		f.llm.respond = func(string) (string, error) {
			return "", apperror.NewProviderError(apperror.KindSafetyBlocked, errors.New("blocked"))
		}

		_, err := f.svc.Submit(context.Background(), f.userID, &dto.SubmitProgressRequest{
			ConsultationId: f.consultationID,
			Description:    "rough day",
			MoodRating:     3,
		})
		assert.True(t, apperror.IsProvider(err))
		assert.Empty(t, f.store.ProgressEntries())
	})

	t.Run("persistence", func(t *testing.T) {
		f := newProgressFixture(t)
		f.store.FailOn("progress.create", errors.New("disk full"))

		_, err := f.svc.Submit(context.Background(), f.userID, &dto.SubmitProgressRequest{
			ConsultationId: f.consultationID,
			Description:    "rough day",
			MoodRating:     3,
		})
		assert.True(t, apperror.IsPersistence(err))
		assert.Empty(t, f.store.ProgressEntries())
		assert.Empty(t, f.pub.types())
		require.Len(t, f.logger.errors(), 1)
		assert.Equal(t, "keep going", f.logger.errors()[0].details["feedback"])
	})
}

func TestProgressService_GetByConsultation(t *testing.T) {
	f := newProgressFixture(t)
	f.seedEntries(t, 4, 6, 8)

	list, err := f.svc.GetByConsultation(context.Background(), f.userID, f.consultationID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 8.0, list[0].MoodRating)

	_, err = f.svc.GetByConsultation(context.Background(), uuid.New(), f.consultationID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProgressService_Summary(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newProgressFixture(t)

		res, err := f.svc.Summary(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, progress.NoEntriesMessage, res.Message)
		assert.Zero(t, res.TotalEntries)
		assert.Empty(t, res.MoodTrend)
		assert.Nil(t, res.LatestEntry)
	})

	t.Run("entries", func(t *testing.T) {
		f := newProgressFixture(t)
		f.seedEntries(t, 4, 6, 8)

		res, err := f.svc.Summary(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalEntries)
		assert.Equal(t, 6.0, res.AverageMood)
		require.Len(t, res.MoodTrend, 3)
		assert.Equal(t, 8.0, res.MoodTrend[0].Mood)
		require.NotNil(t, res.LatestEntry)
		assert.Equal(t, "day 3", res.LatestEntry.Description)
	})
}
