package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackPublish_SendsBlocks(t *testing.T) {
	var payload struct {
		Blocks []map[string]any `json:"blocks"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	slack := NewSlack(server.URL, 5*time.Second, nopLogger{})
	require.NoError(t, slack.Publish(context.Background(), samplePost()))

	// Summary section, divider, links header, one section per article.
	require.Len(t, payload.Blocks, 4)
	assert.Equal(t, "section", payload.Blocks[0]["type"])
	summaryText := payload.Blocks[0]["text"].(map[string]any)["text"].(string)
	assert.Contains(t, summaryText, "secon.dev 年間サマリー")
	assert.Contains(t, summaryText, "散歩した。")

	assert.Equal(t, "divider", payload.Blocks[1]["type"])
	assert.Equal(t, "header", payload.Blocks[2]["type"])

	linkText := payload.Blocks[3]["text"].(map[string]any)["text"].(string)
	assert.Contains(t, linkText, "2023年")
	assert.Contains(t, linkText, "https://secon.dev/entry/2023/01/27/210000/")
}

func TestSlackPublish_EmptyURL(t *testing.T) {
	slack := NewSlack("", 5*time.Second, nopLogger{})
	err := slack.Publish(context.Background(), samplePost())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestSlackPublish_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	slack := NewSlack(server.URL, 5*time.Second, nopLogger{})
	err := slack.Publish(context.Background(), samplePost())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
