package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/serverutils"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/consultation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-test-secret"

type consultationServiceStub struct {
	consultErr error
}

func (s *consultationServiceStub) Consult(ctx context.Context, userId uuid.UUID, req *dto.ConsultRequest) (*dto.ConsultResponse, error) {
	if s.consultErr != nil {
		return nil, s.consultErr
	}
	return &dto.ConsultResponse{Id: uuid.New(), Analysis: "analysis"}, nil
}

func (s *consultationServiceStub) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ConsultationListItem, error) {
	return []*dto.ConsultationListItem{}, nil
}

func (s *consultationServiceStub) Recommend(ctx context.Context, req *dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	return &dto.RecommendationResponse{Recommendation: "rest"}, nil
}

type ragServiceStub struct {
	lastUser uuid.UUID
}

func (s *ragServiceStub) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	s.lastUser = userId
	return &dto.AskResponse{Id: uuid.New(), Answer: "grounded answer", FragmentCount: 2, Grounded: true}, nil
}

func (s *ragServiceStub) History(ctx context.Context, userId uuid.UUID, patientId uuid.UUID) ([]*dto.ConversationResponse, error) {
	return []*dto.ConversationResponse{}, nil
}

type documentServiceStub struct {
	queued  bool
	lastReq *dto.IngestDocumentRequest
}

func (s *documentServiceStub) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	s.lastReq = req
	return &dto.IngestDocumentResponse{Source: req.Source, Chunks: 3, Replaced: req.Replace}, nil
}

func (s *documentServiceStub) Enqueue(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	s.queued = true
	return &dto.IngestDocumentResponse{Source: req.Source, Queued: true}, nil
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nil))
	register(app.Group("/api"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, auth string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRagController_Ask(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	rag := &ragServiceStub{}
	app := newTestApp(NewRagController(rag, &documentServiceStub{}).RegisterRoutes)
	userID := uuid.New()

	body := `{"question":"how much water?","patient_id":"` + uuid.NewString() + `"}`
	status, out := doJSON(t, app, "POST", "/api/rag/v1/ask", body, bearer(t, userID))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "grounded answer", out["data"].(map[string]interface{})["answer"])
	assert.Equal(t, userID, rag.lastUser)

	status, _ = doJSON(t, app, "POST", "/api/rag/v1/ask", body, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/api/rag/v1/ask", `{"question":""}`, bearer(t, userID))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRagController_IngestAsync(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	docs := &documentServiceStub{}
	app := newTestApp(NewRagController(&ragServiceStub{}, docs).RegisterRoutes)

	status, _ := doJSON(t, app, "POST", "/api/rag/v1/documents?async=true", `{"source":"a.txt","text":"hello"}`, bearer(t, uuid.New()))
	assert.Equal(t, fiber.StatusAccepted, status)
	assert.True(t, docs.queued)
}

func TestRagController_IngestReplace(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	docs := &documentServiceStub{}
	app := newTestApp(NewRagController(&ragServiceStub{}, docs).RegisterRoutes)

	status, out := doJSON(t, app, "POST", "/api/rag/v1/documents", `{"source":"a.txt","text":"hello","replace":true}`, bearer(t, uuid.New()))
	assert.Equal(t, fiber.StatusCreated, status)
	require.NotNil(t, docs.lastReq)
	assert.True(t, docs.lastReq.Replace)
	assert.Equal(t, true, out["data"].(map[string]interface{})["replaced"])
}

func TestConsultationController_FailedStageReturnsPartialState(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	stageErr := &consultation.Error{
		Stage:   consultation.StageRecommend,
		Partial: consultation.NewState("migraine").WithAnalysis("partial analysis"),
		Err:     apperror.NewProviderError(apperror.KindRateLimited, errors.New("quota")),
	}
	app := newTestApp(NewConsultationController(&consultationServiceStub{consultErr: stageErr}).RegisterRoutes)

	status, out := doJSON(t, app, "POST", "/api/health/v1/consult", `{"problem_description":"migraine"}`, bearer(t, uuid.New()))
	assert.Equal(t, fiber.StatusTooManyRequests, status)

	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Recommend", data["stage"])
	partial := data["partial"].(map[string]interface{})
	assert.Equal(t, "partial analysis", partial["analysis"])
	assert.Empty(t, partial["recommendations"])
}
