package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// DiscordWebhookPrefix is the only URL prefix the Discord publisher
// accepts; anything else is refused before a request is made.
const DiscordWebhookPrefix = "https://discord.com/api/webhooks/"

// Discord message content is capped at 2000 characters.
const maxDiscordContent = 2000

// Discord posts the summary to a Discord webhook, with the collage
// uploaded in a follow-up request.
type Discord struct {
	webhookURL string
	urlPrefix  string
	httpClient *http.Client
	logger     ports.Logger
}

var _ ports.Publisher = (*Discord)(nil)

// NewDiscord creates a Discord webhook publisher.
func NewDiscord(webhookURL string, timeout time.Duration, logger ports.Logger) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		urlPrefix:  DiscordWebhookPrefix,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name identifies this destination.
func (d *Discord) Name() string { return "discord" }

// Publish sends the summary text with an embed of per-year links, then
// uploads the collage image when one exists.
func (d *Discord) Publish(ctx context.Context, post model.SummaryPost) error {
	if !strings.HasPrefix(d.webhookURL, d.urlPrefix) {
		return fmt.Errorf("discord webhook URL must start with %s", d.urlPrefix)
	}

	payload := map[string]any{
		"content": truncateRunes(post.Text, maxDiscordContent),
		"embeds": []map[string]any{
			{
				"description": articleLinkList(post.Articles),
				"color":       5814783,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	if post.ImagePath != "" {
		if err := d.uploadImage(ctx, post.ImagePath); err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
	}

	d.logger.Info(ctx, "summary posted to discord")
	return nil
}

func (d *Discord) uploadImage(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func articleLinkList(articles []model.Article) string {
	var builder strings.Builder
	for _, article := range articles {
		builder.WriteString(fmt.Sprintf("✦ **%d年:** %s\n%s\n", article.Year, article.Title, article.URL))
	}
	return builder.String()
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
