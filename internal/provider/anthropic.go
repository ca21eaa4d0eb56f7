package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mseguy/aidesk/internal/domain"
)

// AnthropicClient calls the Anthropic Messages API. The system prompt
// travels in a dedicated top-level field, not in the messages array.
type AnthropicClient struct {
	hc *http.Client
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient() *AnthropicClient {
	return &AnthropicClient{hc: newHTTPClient()}
}

func (c *AnthropicClient) Name() string   { return "anthropic" }
func (c *AnthropicClient) Label() string  { return "Claude (Anthropic)" }
func (c *AnthropicClient) FreeForm() bool { return false }

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
	Error   *vendorError     `json:"error"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type vendorError struct {
	Message string `json:"message"`
}

// Call sends the conversation to the Messages endpoint and returns the
// first text block of the reply.
func (c *AnthropicClient) Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error) {
	payload := anthropicRequest{
		Model:       cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		System:      system,
		Messages:    wireMessages(conversation),
	}

	headers := map[string]string{
		"x-api-key":         cfg.APIKey,
		"anthropic-version": "2023-06-01",
	}

	raw, err := postJSON(ctx, c.hc, c.Name(), cfg.BaseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}

	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &CallError{Provider: c.Name(), Kind: KindAPIError, Message: decoded.Error.Message}
	}

	for _, block := range decoded.Content {
		if (block.Type == "" || block.Type == "text") && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &CallError{Provider: c.Name(), Kind: KindFormat}
}
