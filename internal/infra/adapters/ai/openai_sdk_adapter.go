package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter is the last provider in the fallback chain, built on the
// official SDK instead of a hand-rolled client.
type OpenAIAdapter struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func NewOpenAIAdapter(apiKey, model string, temperature float64, maxTokens int) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if temperature <= 0 {
		temperature = 0.7
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &OpenAIAdapter{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (o *OpenAIAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if model == "" {
		model = o.model
	}
	return estimateTokens(model, messages)
}

func (o *OpenAIAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reply, _, err := o.ChatWithUsage(ctx, model, messages)
	return reply, err
}

func (o *OpenAIAdapter) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	if model == "" {
		model = o.model
	}

	params := openai.ChatCompletionNewParams{
		Model:               model,
		Messages:            toOpenAIMessages(messages),
		Temperature:         openai.Float(o.temperature),
		MaxCompletionTokens: openai.Int(int64(o.maxTokens)),
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", adapter.Usage{}, &domain.UpstreamError{
				Stage:  domain.StageGenerate,
				Status: apiErr.StatusCode,
				Body:   apiErr.Message,
			}
		}
		return "", adapter.Usage{}, err
	}

	usage := adapter.Usage{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
	}
	for _, c := range completion.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, usage, nil
		}
	}
	return "", adapter.Usage{}, domain.ErrMalformedLLMResponse
}

func toOpenAIMessages(messages []adapter.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch strings.ToLower(m.Role) {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
