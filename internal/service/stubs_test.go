package service

import (
	"context"
	"strings"
	"sync"

	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/embedding"
	"ai-health-assistant-be/pkg/events"
	"ai-health-assistant-be/pkg/llm"
	"ai-health-assistant-be/pkg/rag/index"
)

type recordedCall struct {
	messages    []llm.Message
	temperature float64
}

// stubLLM answers with respond(prompt) and records every call.
type stubLLM struct {
	mu      sync.Mutex
	calls   []recordedCall
	respond func(prompt string) (string, error)
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.NewOptions(options...)

	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{messages: history, temperature: opts.Temperature})
	s.mu.Unlock()

	var prompt strings.Builder
	for _, m := range history {
		prompt.WriteString(m.Content)
		prompt.WriteString("\n")
	}
	if s.respond == nil {
		return "ok", nil
	}
	return s.respond(prompt.String())
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (s *stubLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubLLM) lastCall() recordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

type stubIndex struct {
	mu       sync.Mutex
	results  []index.Result
	err      error
	upserted []index.Document
	replaced []string
	lastK    int
}

func (s *stubIndex) Upsert(ctx context.Context, docs []index.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, docs...)
	return nil
}

func (s *stubIndex) Replace(ctx context.Context, source string, docs []index.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.upserted[:0]
	for _, d := range s.upserted {
		if d.Source != source {
			kept = append(kept, d)
		}
	}
	s.upserted = append(kept, docs...)
	s.replaced = append(s.replaced, source)
	return nil
}

func (s *stubIndex) replacedSources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.replaced...)
}

func (s *stubIndex) Retrieve(ctx context.Context, query string, k int) ([]index.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastK = k
	return s.results, s.err
}

func (s *stubIndex) upsertedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.upserted)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type logEntry struct {
	level   string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, message: message, details: details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.add("debug", message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.add("info", message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.add("warn", message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.add("error", message, details)
}

func (l *recordingLogger) Sync() error { return nil }

var _ logger.ILogger = (*recordingLogger)(nil)

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func (l *recordingLogger) errors() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == "error" {
			out = append(out, e)
		}
	}
	return out
}

// fakeEmbedder returns a constant unit vector.
type fakeEmbedder struct{}

func (fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}
