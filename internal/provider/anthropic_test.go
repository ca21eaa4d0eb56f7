package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mseguy/aidesk/internal/domain"
)

func testConversation() []domain.Turn {
	return []domain.Turn{
		{Role: domain.RoleUser, Content: "Mon PC est lent"},
		{Role: domain.RoleAssistant, Content: "Avez-vous redémarré ?"},
		{Role: domain.RoleUser, Content: "Oui, sans effet"},
	}
}

func testConfig(url string) Config {
	return Config{ID: "test", BaseURL: url, APIKey: "secret", Model: "model-1"}
}

func requireCallError(t *testing.T, err error, kind ErrorKind) *CallError {
	t.Helper()
	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, kind, callErr.Kind)
	return callErr
}

func TestAnthropicCall_Success(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": `{"answer":"ok"}`}},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient()
	text, err := c.Call(context.Background(), "system prompt", testConversation(), testConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, `{"answer":"ok"}`, text)

	assert.Equal(t, "secret", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, "model-1", gotReq.Model)
	assert.Equal(t, 512, gotReq.MaxTokens)
	assert.InDelta(t, 0.2, gotReq.Temperature, 1e-9)
	assert.Equal(t, "system prompt", gotReq.System)
	require.Len(t, gotReq.Messages, 3)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "assistant", gotReq.Messages[1].Role)
	assert.Equal(t, "Oui, sans effet", gotReq.Messages[2].Content)
}

func TestAnthropicCall_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "rate_limit_error", "message": "Rate limit exceeded"},
		})
	}))
	defer srv.Close()

	c := NewAnthropicClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))

	callErr := requireCallError(t, err, KindAPIError)
	assert.Equal(t, "Rate limit exceeded", callErr.Message)
	assert.Equal(t, "anthropic", callErr.Provider)
}

func TestAnthropicCall_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := NewAnthropicClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindFormat)
}

func TestAnthropicCall_NoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	c := NewAnthropicClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindFormat)
}

func TestAnthropicCall_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewAnthropicClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindCommunication)
}

func TestAnthropicCall_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewAnthropicClient()
	_, err := c.Call(ctx, "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindCommunication)
}

func TestCallErrorMessage(t *testing.T) {
	err := &CallError{Provider: "anthropic", Kind: KindAPIError, Message: "boom"}
	assert.Equal(t, "anthropic: api_error: boom", err.Error())

	bare := &CallError{Provider: "openai", Kind: KindCommunication}
	assert.Equal(t, "openai: communication", bare.Error())

	var target *CallError
	assert.True(t, errors.As(err, &target))
}

func TestConfigComplete(t *testing.T) {
	assert.True(t, testConfig("https://x").Complete())
	assert.False(t, Config{BaseURL: "https://x", APIKey: "k"}.Complete())
	assert.False(t, Config{BaseURL: "https://x", Model: "m"}.Complete())
	assert.False(t, Config{APIKey: "k", Model: "m"}.Complete())
}
