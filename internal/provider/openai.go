package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mseguy/aidesk/internal/domain"
)

// OpenAICompatibleClient calls any chat-completions API that follows
// the OpenAI wire format: bearer auth, a messages array with an
// embedded system entry, and choices[0].message.content in the reply.
// Mistral and xAI expose the same shape, so they share this client
// under their own names and labels.
type OpenAICompatibleClient struct {
	name  string
	label string
	hc    *http.Client
}

// NewOpenAIClient creates a client labeled for OpenAI.
func NewOpenAIClient() *OpenAICompatibleClient {
	return &OpenAICompatibleClient{name: "openai", label: "ChatGPT (OpenAI)", hc: newHTTPClient()}
}

// NewMistralClient creates a client labeled for Mistral AI.
func NewMistralClient() *OpenAICompatibleClient {
	return &OpenAICompatibleClient{name: "mistral", label: "Mistral (Mistral AI)", hc: newHTTPClient()}
}

// NewXAIClient creates a client labeled for xAI.
func NewXAIClient() *OpenAICompatibleClient {
	return &OpenAICompatibleClient{name: "xai", label: "Grok (xAI)", hc: newHTTPClient()}
}

func (c *OpenAICompatibleClient) Name() string   { return c.name }
func (c *OpenAICompatibleClient) Label() string  { return c.label }
func (c *OpenAICompatibleClient) FreeForm() bool { return false }

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
	Error   *vendorError   `json:"error"`
}

type openAIChoice struct {
	Message *openAIMessage `json:"message"`
}

type openAIMessage struct {
	// Content is either a plain string or a list of content parts,
	// depending on the vendor and model.
	Content json.RawMessage `json:"content"`
}

// Call sends the conversation with a leading system-role message and
// returns the assistant content of the first choice.
func (c *OpenAICompatibleClient) Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error) {
	msgs := make([]chatMessage, 0, len(conversation)+1)
	msgs = append(msgs, chatMessage{Role: "system", Content: system})
	msgs = append(msgs, wireMessages(conversation)...)

	payload := openAIRequest{
		Model:       cfg.Model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}

	raw, err := postJSON(ctx, c.hc, c.name, cfg.BaseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var decoded openAIResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &CallError{Provider: c.name, Kind: KindFormat}
	}

	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &CallError{Provider: c.name, Kind: KindAPIError, Message: decoded.Error.Message}
	}

	if len(decoded.Choices) == 0 || decoded.Choices[0].Message == nil {
		return "", &CallError{Provider: c.name, Kind: KindFormat}
	}

	text, ok := decodeOpenAIContent(decoded.Choices[0].Message.Content)
	if !ok || text == "" {
		return "", &CallError{Provider: c.name, Kind: KindFormat}
	}
	return text, nil
}

// decodeOpenAIContent flattens a content field that may be a string or
// a list of parts (strings or {text: ...} objects).
func decodeOpenAIContent(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", false
	}

	var texts []string
	for _, p := range parts {
		var ps string
		if err := json.Unmarshal(p, &ps); err == nil {
			texts = append(texts, ps)
			continue
		}
		var obj struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(p, &obj); err == nil && obj.Text != "" {
			texts = append(texts, obj.Text)
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	return strings.Join(texts, "\n"), true
}
