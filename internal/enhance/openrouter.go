package enhance

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/ukaji3/recetario-go/internal/config"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenRouter calls an OpenAI-compatible chat completions endpoint.
type OpenRouter struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewOpenRouter returns an OpenRouter provider.
func NewOpenRouter(cfg config.EnhancerConfig) *OpenRouter {
	client := resty.New().
		SetBaseURL(cfg.OpenRouterBaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouterAPIKey)).
		SetHeader("X-Title", "Recetario").
		SetRetryCount(2)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &OpenRouter{client: client, model: cfg.OpenRouterModel, maxTokens: cfg.MaxTokens}
}

func (o *OpenRouter) Name() string { return "openrouter" }

// Generate posts prompt as a single user message.
func (o *OpenRouter) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		out  chatResponse
		fail chatError
	)
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:          o.model,
			Messages:       []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:      o.maxTokens,
			ResponseFormat: map[string]string{"type": "json_object"},
		}).
		SetResult(&out).
		SetError(&fail).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("openrouter: status %d: %s", resp.StatusCode(), fail.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openrouter: empty response")
	}
	return out.Choices[0].Message.Content, nil
}
