package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type openAIClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func newOpenAI(apiKey, model string, timeout time.Duration) *openAIClient {
	return &openAIClient{
		client:  newRestyClient(timeout),
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com/v1",
	}
}

// Complete issues one chat completion call.
func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}

	req := openAIRequest{
		Model:       c.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1500,
	}

	var out openAIResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if out.Error != nil {
		return "", fmt.Errorf("openai error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai returned empty content")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
