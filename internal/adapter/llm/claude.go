package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type claudeClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func newClaude(apiKey, model string, timeout time.Duration) *claudeClient {
	return &claudeClient{
		client:  newRestyClient(timeout),
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.anthropic.com/v1",
	}
}

// Complete issues one messages call.
func (c *claudeClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	req := claudeRequest{
		Model:     c.model,
		MaxTokens: 1500,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}

	var out claudeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetBody(req).
		SetResult(&out).
		Post(c.baseURL + "/messages")
	if err != nil {
		return "", fmt.Errorf("call claude: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("claude status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if out.Error != nil {
		return "", fmt.Errorf("claude error: %s", out.Error.Message)
	}

	for _, block := range out.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return strings.TrimSpace(block.Text), nil
		}
	}

	return "", fmt.Errorf("claude returned empty content")
}
