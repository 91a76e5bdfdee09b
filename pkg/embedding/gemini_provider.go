package embedding

import (
	"context"
	"fmt"

	"ai-health-assistant-be/pkg/llm"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "text-embedding-004"

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (EmbeddingProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini embedding: API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedding: create client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	dim := int32(Dimension)
	config := &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dim,
	}

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	result, err := p.client.Models.EmbedContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, llm.Classify(fmt.Errorf("gemini embed: %w", err))
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, llm.Classify(fmt.Errorf("no embeddings returned from Gemini API"))
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(result.Embeddings[0].Values),
		},
	}, nil
}
