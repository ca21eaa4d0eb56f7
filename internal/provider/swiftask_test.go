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

func TestSwiftaskCall_Success(t *testing.T) {
	var gotReq swiftaskRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{"text": "Essayez de redémarrer."})
	}))
	defer srv.Close()

	c := NewSwiftaskClient()
	text, err := c.Call(context.Background(), "system prompt", testConversation(), testConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, "Essayez de redémarrer.", text)

	assert.Equal(t, "Oui, sans effet", gotReq.Input, "input carries the last user message")
	assert.Equal(t, "SIMPLE", gotReq.DocumentAnalysisMode)
	assert.NotNil(t, gotReq.Files)
	assert.Empty(t, gotReq.Files)
	require.Len(t, gotReq.MessageHistory, 4)
	assert.Equal(t, "system", gotReq.MessageHistory[0].Role)
	assert.Equal(t, "user", gotReq.MessageHistory[1].Role)
}

func TestSwiftaskCall_DollarTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"$text": "réponse alternative"})
	}))
	defer srv.Close()

	c := NewSwiftaskClient()
	text, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, "réponse alternative", text)
}

func TestSwiftaskCall_ErrorKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INTERNAL"}})
	}))
	defer srv.Close()

	c := NewSwiftaskClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindCommunication)
}

func TestSwiftaskCall_MissingText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer srv.Close()

	c := NewSwiftaskClient()
	_, err := c.Call(context.Background(), "s", testConversation(), testConfig(srv.URL))
	requireCallError(t, err, KindFormat)
}

func TestSwiftaskCall_EmptySystemOmitted(t *testing.T) {
	var gotReq swiftaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{"text": "ok"})
	}))
	defer srv.Close()

	c := NewSwiftaskClient()
	_, err := c.Call(context.Background(), "  ", testConversation(), testConfig(srv.URL))

	require.NoError(t, err)
	require.Len(t, gotReq.MessageHistory, 3)
	assert.Equal(t, "user", gotReq.MessageHistory[0].Role)
}

func TestSwiftaskIdentity(t *testing.T) {
	c := NewSwiftaskClient()
	assert.Equal(t, "swiftask", c.Name())
	assert.Equal(t, "Swiftask IA", c.Label())
	assert.True(t, c.FreeForm(), "swiftask answers in prose, not the JSON contract")
}
