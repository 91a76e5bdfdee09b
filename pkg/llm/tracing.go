package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ai-health-assistant-be/pkg/llm")

type tracingProvider struct {
	next LLMProvider
	name string
}

// WithTracing records one span per model call. With no tracer provider
// installed the spans are no-ops.
func WithTracing(p LLMProvider, providerName string) LLMProvider {
	return &tracingProvider{next: p, name: providerName}
}

func (t *tracingProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	opts := NewOptions(options...)
	ctx, span := tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		attribute.String("llm.provider", t.name),
		attribute.Int("llm.messages", len(history)),
		attribute.Float64("llm.temperature", opts.Temperature),
	))
	defer span.End()

	out, err := t.next.Chat(ctx, history, options...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("llm.response_chars", len(out)))
	return out, nil
}

func (t *tracingProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return t.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}
