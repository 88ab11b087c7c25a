package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelSpec(t *testing.T) {
	vendor, model, err := ParseModelSpec("openai/gpt-4.1-nano")
	require.NoError(t, err)
	assert.Equal(t, "openai", vendor)
	assert.Equal(t, "gpt-4.1-nano", model)

	// Model names may themselves contain slashes.
	vendor, model, err = ParseModelSpec("gemini/models/gemini-2.0-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini", vendor)
	assert.Equal(t, "models/gemini-2.0-flash", model)

	for _, spec := range []string{"", "openai", "openai/", "/gpt-4"} {
		_, _, err := ParseModelSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestNew_Vendors(t *testing.T) {
	opts := Options{Timeout: time.Second}

	for _, spec := range []string{"openai/gpt-4.1-nano", "gemini/gemini-2.0-flash", "claude/claude-sonnet-4"} {
		completer, err := New(spec, opts)
		require.NoError(t, err, spec)
		assert.NotNil(t, completer, spec)
	}

	_, err := New("mistral/large", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported vendor")
}

func TestOpenAIComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4.1-nano", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": " 要約です。 "}},
			},
		})
	}))
	defer server.Close()

	client := newOpenAI("sk-test", "gpt-4.1-nano", time.Second)
	client.baseURL = server.URL

	text, err := client.Complete(context.Background(), "まとめて")
	require.NoError(t, err)
	assert.Equal(t, "要約です。", text)
}

func TestOpenAIComplete_MissingKey(t *testing.T) {
	client := newOpenAI("", "gpt-4.1-nano", time.Second)
	_, err := client.Complete(context.Background(), "まとめて")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestOpenAIComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := newOpenAI("sk-test", "gpt-4.1-nano", time.Second)
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), "まとめて")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}

func TestGeminiComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "key-test", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "要約です。"}}}},
			},
		})
	}))
	defer server.Close()

	client := newGemini("key-test", "gemini-2.0-flash", time.Second)
	client.baseURL = server.URL

	text, err := client.Complete(context.Background(), "まとめて")
	require.NoError(t, err)
	assert.Equal(t, "要約です。", text)
}

func TestClaudeComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "thinking", "text": ""},
				{"type": "text", "text": "要約です。"},
			},
		})
	}))
	defer server.Close()

	client := newClaude("key-test", "claude-sonnet-4", time.Second)
	client.baseURL = server.URL

	text, err := client.Complete(context.Background(), "まとめて")
	require.NoError(t, err)
	assert.Equal(t, "要約です。", text)
}
