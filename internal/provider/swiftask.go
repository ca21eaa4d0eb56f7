package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mseguy/aidesk/internal/domain"
)

// SwiftaskClient calls the Swiftask gateway API. Its request shape is
// an input field holding the current user message plus a full message
// history; its reply is plain prose in a text field. Swiftask is the
// designated free-form provider: it is not held to the JSON contract.
type SwiftaskClient struct {
	hc *http.Client
}

// NewSwiftaskClient creates a client for the Swiftask API.
func NewSwiftaskClient() *SwiftaskClient {
	return &SwiftaskClient{hc: newHTTPClient()}
}

func (c *SwiftaskClient) Name() string   { return "swiftask" }
func (c *SwiftaskClient) Label() string  { return "Swiftask IA" }
func (c *SwiftaskClient) FreeForm() bool { return true }

type swiftaskRequest struct {
	Input                string        `json:"input"`
	DocumentAnalysisMode string        `json:"documentAnalysisMode"`
	Files                []string      `json:"files"`
	MessageHistory       []chatMessage `json:"messageHistory"`
}

// Call sends the conversation and returns the reply text. Swiftask
// reports failures with a bare "error" key carrying no usable message,
// so its error envelope maps to KindCommunication.
func (c *SwiftaskClient) Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error) {
	input := ""
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == domain.RoleUser {
			input = conversation[i].Content
			break
		}
	}

	history := make([]chatMessage, 0, len(conversation)+1)
	if strings.TrimSpace(system) != "" {
		history = append(history, chatMessage{Role: "system", Content: system})
	}
	history = append(history, wireMessages(conversation)...)

	payload := swiftaskRequest{
		Input:                input,
		DocumentAnalysisMode: "SIMPLE",
		Files:                []string{},
		MessageHistory:       history,
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}

	raw, err := postJSON(ctx, c.hc, c.Name(), cfg.BaseURL, headers, payload)
	if err != nil {
		return "", err
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}

	if _, ok := decoded["error"]; ok {
		return "", &CallError{Provider: c.Name(), Kind: KindCommunication}
	}

	text := swiftaskText(decoded, "text")
	if text == "" {
		text = swiftaskText(decoded, "$text")
	}
	if text == "" {
		return "", &CallError{Provider: c.Name(), Kind: KindFormat}
	}
	return text, nil
}

func swiftaskText(decoded map[string]json.RawMessage, key string) string {
	raw, ok := decoded[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
