package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	cfg := Load()

	assert.Equal(t, "gemini-2.0-flash", cfg.Ai.LLMModel)
	assert.Equal(t, 0.7, cfg.Ai.PipelineTemperature)
	assert.Equal(t, 0.0, cfg.Ai.GroundedTemperature)
	assert.Equal(t, 4, cfg.Rag.TopK)
	assert.Equal(t, 100, cfg.Rag.ChunkSize)
	assert.Equal(t, 20, cfg.Rag.ChunkOverlap)
	assert.Equal(t, 30*time.Second, cfg.Ai.EmbeddingTimeout)
	assert.Equal(t, 30*time.Second, cfg.Rag.IndexTimeout)
	assert.Equal(t, 3, cfg.App.IngestMaxRetries)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "ai-health-assistant-backend", cfg.Tracing.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RAG_TOP_K", "8")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("PIPELINE_PARALLEL", "true")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CHUNK_SIZE", "not-a-number")
	t.Setenv("EMBEDDING_TIMEOUT", "5s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "health-staging")

	cfg := Load()

	assert.Equal(t, 8, cfg.Rag.TopK)
	assert.Equal(t, 15*time.Second, cfg.Ai.LLMTimeout)
	assert.True(t, cfg.Ai.PipelineParallel)
	assert.Equal(t, "sk-test", cfg.LLMKey())
	assert.Equal(t, 100, cfg.Rag.ChunkSize, "invalid values fall back to the default")
	assert.Equal(t, 5*time.Second, cfg.Ai.EmbeddingTimeout)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "health-staging", cfg.Tracing.ServiceName)
}
