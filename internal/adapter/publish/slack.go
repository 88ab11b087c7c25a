package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// Slack posts the summary to a Slack incoming webhook using Block Kit.
type Slack struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Publisher = (*Slack)(nil)

// NewSlack creates a Slack webhook publisher.
func NewSlack(webhookURL string, timeout time.Duration, logger ports.Logger) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name identifies this destination.
func (s *Slack) Name() string { return "slack" }

// Publish sends the summary and per-year links as Block Kit blocks.
// Image upload needs the Slack file API and a bot token, so the saved
// collage path is only logged.
func (s *Slack) Publish(ctx context.Context, post model.SummaryPost) error {
	if s.webhookURL == "" {
		return fmt.Errorf("slack webhook URL is empty")
	}

	blocks := []map[string]any{
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("*secon.dev 年間サマリー*\n\n%s", post.Text),
			},
		},
		{"type": "divider"},
		{
			"type": "header",
			"text": map[string]any{
				"type":  "plain_text",
				"text":  "元記事リンク 🔗",
				"emoji": true,
			},
		},
	}

	for _, article := range post.Articles {
		blocks = append(blocks, map[string]any{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("✦ *%d年*: %s / %s\n%s", article.Year, article.Title, article.DateStr(), article.URL),
			},
		})
	}

	body, err := json.Marshal(map[string]any{"blocks": blocks})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	if post.ImagePath != "" {
		s.logger.Info(ctx, "slack image upload not supported, image saved locally", "path", post.ImagePath)
	}

	s.logger.Info(ctx, "summary posted to slack")
	return nil
}
