package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*DashScopeAdapter)(nil)

// DashScopeAdapter implements adapter.AIServiceAdapter against DashScope's
// OpenAI-compatible gateway (Qwen models).
// Base URL defaults to https://dashscope.aliyuncs.com/compatible-mode/v1.
// Chat completions path is the same as OpenAI: /chat/completions
// Authorization: Bearer <DASHSCOPE_API_KEY>
type DashScopeAdapter struct {
	apiKey      string
	base        string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func NewDashScopeAdapter(apiKey, model, base string, temperature float64, maxTokens int) (*DashScopeAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("dashscope api key empty")
	}
	if model == "" {
		model = "qwen-turbo"
	}
	if base == "" {
		base = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if temperature <= 0 {
		temperature = 0.7
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &DashScopeAdapter{
		apiKey:      apiKey,
		base:        strings.TrimRight(base, "/"),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		client:      &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (d *DashScopeAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if model == "" {
		model = d.model
	}
	return estimateTokens(model, messages)
}

func (d *DashScopeAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reply, _, err := d.ChatWithUsage(ctx, model, messages)
	return reply, err
}

func (d *DashScopeAdapter) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	if model == "" {
		model = d.model
	}

	reqBody := struct {
		Model       string            `json:"model"`
		Messages    []adapter.Message `json:"messages"`
		Temperature float64           `json:"temperature"`
		MaxTokens   int               `json:"max_tokens"`
	}{Model: model, Messages: messages, Temperature: d.temperature, MaxTokens: d.maxTokens}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, d.base+"/chat/completions", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", adapter.Usage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", adapter.Usage{}, &domain.UpstreamError{Stage: domain.StageGenerate, Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", adapter.Usage{}, domain.ErrMalformedLLMResponse
	}

	usage := adapter.Usage{
		PromptTokens:     payload.Usage.PromptTokens,
		CompletionTokens: payload.Usage.CompletionTokens,
		TotalTokens:      payload.Usage.TotalTokens,
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, usage, nil
		}
	}
	return "", adapter.Usage{}, domain.ErrMalformedLLMResponse
}
