package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mseguy/aidesk/internal/domain"
)

// GeminiClient calls the Google Gemini generateContent API. The
// conversation travels as contents/parts with "model" as the assistant
// role, and the system prompt as a separate system_instruction block.
type GeminiClient struct {
	hc *http.Client
}

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient() *GeminiClient {
	return &GeminiClient{hc: newHTTPClient()}
}

func (c *GeminiClient) Name() string   { return "google" }
func (c *GeminiClient) Label() string  { return "Gemini (Google)" }
func (c *GeminiClient) FreeForm() bool { return false }

type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction geminiContent    `json:"system_instruction"`
	GenerationConfig  geminiGenConfig  `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *vendorError      `json:"error"`
}

type geminiCandidate struct {
	Content struct {
		Parts []geminiPart `json:"parts"`
	} `json:"content"`
}

// Call sends the conversation to generateContent and returns the first
// part of the first candidate. An explicit error envelope is surfaced
// as KindAPIError with the vendor's message.
func (c *GeminiClient) Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error) {
	contents := make([]geminiContent, 0, len(conversation))
	for _, t := range conversation {
		role := "user"
		if t.Role == domain.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: t.Content}},
		})
	}

	payload := geminiRequest{
		Contents: contents,
		SystemInstruction: geminiContent{
			Role:  "system",
			Parts: []geminiPart{{Text: system}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	headers := map[string]string{"x-goog-api-key": cfg.APIKey}

	raw, err := postJSON(ctx, c.hc, c.Name(), cfg.BaseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}

	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &CallError{Provider: c.Name(), Kind: KindAPIError, Message: decoded.Error.Message}
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}
	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}
	return text, nil
}
