// Package provider implements a uniform client contract over
// heterogeneous LLM vendor APIs. Each vendor client translates a
// normalized conversation into its own request shape, performs a single
// HTTP POST, and extracts the raw assistant text from the vendor's
// response envelope. Interpretation of that text is not done here; see
// the interpret package.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mseguy/aidesk/internal/domain"
)

// Completion parameters shared by all vendors.
const (
	callTimeout = 15 * time.Second
	maxTokens   = 512
	temperature = 0.2
)

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	// KindCommunication covers transport failures and timeouts.
	KindCommunication ErrorKind = "communication"
	// KindFormat covers responses that do not parse or lack the
	// expected text field.
	KindFormat ErrorKind = "format"
	// KindAPIError covers explicit error envelopes returned by the
	// vendor; Message carries the vendor's own text.
	KindAPIError ErrorKind = "api_error"
)

// CallError is returned when a provider call fails. For KindAPIError
// the Message field holds the vendor's human-readable error, suitable
// for surfacing to the user verbatim.
type CallError struct {
	Provider string
	Kind     ErrorKind
	Message  string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

// Config carries the per-request provider settings. It is supplied
// wholesale by the configuration layer and treated as immutable for the
// duration of one call.
type Config struct {
	ID      string
	BaseURL string
	APIKey  string
	Model   string
}

// Complete reports whether URL, key and model are all present. Model is
// required even for vendors that ignore it, so validation stays uniform.
func (c Config) Complete() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.Model != ""
}

// Client is the interface all vendor clients implement.
type Client interface {
	// Call sends one completion request and returns the raw assistant
	// text. The conversation must be non-empty with the current user
	// message as its final turn. Failures are *CallError values; no
	// retries are performed.
	Call(ctx context.Context, system string, conversation []domain.Turn, cfg Config) (string, error)

	// Name returns the provider identifier (e.g. "anthropic").
	Name() string

	// Label returns the human-readable provider name used in
	// user-facing error messages.
	Label() string

	// FreeForm reports whether the provider is permitted to answer in
	// plain prose instead of the strict JSON contract.
	FreeForm() bool
}

// chatMessage is the role/content pair most vendor wire formats share.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// wireMessages maps normalized turns to vendor role/content pairs.
// Anything that is not an assistant turn is sent as a user turn.
func wireMessages(conversation []domain.Turn) []chatMessage {
	msgs := make([]chatMessage, 0, len(conversation))
	for _, t := range conversation {
		role := "user"
		if t.Role == domain.RoleAssistant {
			role = "assistant"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: t.Content})
	}
	return msgs
}

// postJSON performs the single outbound POST of a provider call and
// returns the raw response body. Transport-level failures map to
// KindCommunication. Non-2xx statuses are not treated specially here:
// vendors report errors in the body and each client decodes its own
// envelope.
func postJSON(ctx context.Context, hc *http.Client, providerName, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &CallError{Provider: providerName, Kind: KindFormat}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &CallError{Provider: providerName, Kind: KindCommunication}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &CallError{Provider: providerName, Kind: KindCommunication}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CallError{Provider: providerName, Kind: KindCommunication}
	}
	return raw, nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: callTimeout}
}
