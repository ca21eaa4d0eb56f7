package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiCall_Success(t *testing.T) {
	var gotReq geminiRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "réponse"}}}},
			},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient()
	text, err := c.Call(context.Background(), "system prompt", testConversation(), testConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, "réponse", text)
	assert.Equal(t, "secret", gotKey)

	assert.Equal(t, "system prompt", gotReq.SystemInstruction.Parts[0].Text)
	assert.Equal(t, 512, gotReq.GenerationConfig.MaxOutputTokens)
	require.Len(t, gotReq.Contents, 3)
	assert.Equal(t, "user", gotReq.Contents[0].Role)
	assert.Equal(t, "model", gotReq.Contents[1].Role, "assistant turns use the 'model' role")
	assert.Equal(t, "Oui, sans effet", gotReq.Contents[2].Parts[0].Text)
}

func TestGeminiCall_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"},
		})
	}))
	defer srv.Close()

	c := NewGeminiClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))

	callErr := requireCallError(t, err, KindAPIError)
	assert.Equal(t, "API key not valid", callErr.Message)
	assert.Equal(t, "google", callErr.Provider)
}

func TestGeminiCall_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := NewGeminiClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindFormat)
}

func TestGeminiIdentity(t *testing.T) {
	c := NewGeminiClient()
	assert.Equal(t, "google", c.Name())
	assert.Equal(t, "Gemini (Google)", c.Label())
	assert.False(t, c.FreeForm())
}
