package config

import (
	"os"
	"strconv"
	"time"
)

// Config contains runtime configuration values. Credentials and webhook
// URLs are read here once and handed to constructors; nothing else in
// the codebase touches the environment.
type Config struct {
	BlogBaseURL       string
	RequestTimeout    time.Duration
	OutputDir         string
	SummaryRetries    int
	ScheduleCron      string
	OpenAIAPIKey      string
	GoogleAPIKey      string
	AnthropicAPIKey   string
	DiscordWebhookURL string
	SlackWebhookURL   string
}

const (
	defaultBlogBaseURL = "https://secon.dev"
	defaultTimeout     = 30 * time.Second
	defaultOutputDir   = "output"
	defaultRetries     = 2
)

// Load builds a Config from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		BlogBaseURL:       getenvDefault("BLOG_BASE_URL", defaultBlogBaseURL),
		RequestTimeout:    parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		OutputDir:         getenvDefault("OUTPUT_DIR", defaultOutputDir),
		SummaryRetries:    parseIntDefault("SUMMARY_RETRIES", defaultRetries),
		ScheduleCron:      getenvDefault("SCHEDULE_CRON", ""),
		OpenAIAPIKey:      getenvDefault("OPENAI_API_KEY", ""),
		GoogleAPIKey:      getenvDefault("GOOGLE_API_KEY", ""),
		AnthropicAPIKey:   getenvDefault("ANTHROPIC_API_KEY", ""),
		DiscordWebhookURL: getenvDefault("DISCORD_WEBHOOK_URL", ""),
		SlackWebhookURL:   getenvDefault("SLACK_WEBHOOK_URL", ""),
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.SummaryRetries < 0 {
		cfg.SummaryRetries = defaultRetries
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
