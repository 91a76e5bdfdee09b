package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-health-assistant-be/pkg/consultation"
	"ai-health-assistant-be/pkg/llm"
	"ai-health-assistant-be/pkg/llm/ollama"
	"ai-health-assistant-be/pkg/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaProvider(t *testing.T) llm.LLMProvider {
	t.Helper()

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "gemma:2b"
	}
	return llm.WithTimeout(ollama.NewOllamaProvider(baseURL, model), 3*time.Minute)
}

func TestOllama_ConsultationPipeline(t *testing.T) {
	provider := ollamaProvider(t)

	state, err := consultation.NewPipeline(provider).Run(context.Background(), "Mild tension headache after long screen sessions")
	require.NoError(t, err)

	assert.True(t, state.Complete())
	assert.NotEmpty(t, state.Analysis)
	assert.NotEmpty(t, state.Recommendations)
	assert.NotEmpty(t, state.Exercises)
	assert.Equal(t, consultation.Disclaimer, state.Disclaimer)
	t.Logf("Document:\n%s", state.Document())
}

func TestOllama_ProgressFeedback(t *testing.T) {
	provider := ollamaProvider(t)

	history := []progress.HistoryItem{
		{Date: time.Now().AddDate(0, 0, -2), Mood: 4, Symptoms: "stiff neck"},
		{Date: time.Now().AddDate(0, 0, -1), Mood: 6, Symptoms: "less stiffness"},
	}
	out, err := progress.NewFeedbackService(provider, 0.7).Feedback(context.Background(), history, progress.NewEntry{
		Description:      "Slept well and stretched twice",
		MoodRating:       7,
		SymptomsImproved: "neck mobility",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
