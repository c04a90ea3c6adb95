package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestClient(t *testing.T, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewGemini(context.Background(), "g-test", srv.URL, "gemini-test", srv.Client())
	require.NoError(t, err)
	return c
}

func TestGeminiClient_Generate(t *testing.T) {
	var body map[string]any
	c := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Uma "},{"text":"resposta"}]},"finishReason":"STOP"}],
			"usageMetadata":{"promptTokenCount":4,"candidatesTokenCount":2,"totalTokenCount":6}}`))
	})

	resp, err := c.Generate(context.Background(), Prompt("", "O que é Go?"))
	require.NoError(t, err)
	assert.Equal(t, "Uma resposta", resp.Content)
	assert.Equal(t, "gemini-test", resp.Model)
	assert.Equal(t, 6, resp.TotalTokens)

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	_, hasSystem := body["systemInstruction"]
	assert.False(t, hasSystem)
}

func TestGeminiClient_Errors(t *testing.T) {
	t.Run("blocked prompt", func(t *testing.T) {
		c := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
		})
		_, err := c.Generate(context.Background(), Prompt("", "q"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SAFETY")
	})

	t.Run("quota exceeded", func(t *testing.T) {
		c := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
		})
		_, err := c.Generate(context.Background(), Prompt("", "q"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exhausted")
	})
}

func TestGeminiClient_SystemInstruction(t *testing.T) {
	var body map[string]any
	c := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "g-test", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	})

	resp, err := c.Generate(context.Background(), Prompt("Be brief.", "q"))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)

	si, ok := body["systemInstruction"].(map[string]any)
	require.True(t, ok, "systemInstruction missing: %v", body)
	parts, ok := si["parts"].([]any)
	require.True(t, ok)
	require.Len(t, parts, 1)
	assert.Equal(t, "Be brief.", parts[0].(map[string]any)["text"])
}
