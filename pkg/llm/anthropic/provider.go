package anthropic

import (
	"context"
	"fmt"
	"strings"

	"ai-health-assistant-be/pkg/llm"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2048
)

type ClaudeProvider struct {
	client anthropic.Client
	model  string
}

var _ llm.LLMProvider = (*ClaudeProvider)(nil)

func NewClaudeProvider(apiKey, model string) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (p *ClaudeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(append([]llm.Option{llm.WithMaxTokens(defaultMaxTokens)}, opts...)...)

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	var system []anthropic.TextBlockParam
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case llm.RoleAssistant, "model":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("anthropic: no user content to send")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(options.MaxTokens),
		Messages:  messages,
	}
	params.Temperature = anthropic.Float(options.Temperature)
	if len(system) > 0 {
		params.System = system
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", llm.Classify(fmt.Errorf("anthropic messages: %w", err))
	}

	if string(resp.StopReason) == "refusal" {
		return "", llm.SafetyBlocked("refusal")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", llm.Classify(fmt.Errorf("empty text in Claude response"))
	}

	return sb.String(), nil
}

func (p *ClaudeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
