//go:build wireinject

package di

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/blog"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/imaging"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/llm"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/logging"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/publish"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/app"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/config"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp(opts usecase.Options) (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideArticleSource,
		usecase.NewCollector,
		provideCompleter,
		provideSummarizer,
		provideComposer,
		providePublishers,
		provideSummaryConfig,
		usecase.NewYearSummary,
		app.New,
		provideSchedule,
	)
	return nil, nil
}

func provideSlogLogger(opts usecase.Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

func provideArticleSource(cfg *config.Config, logger ports.Logger) ports.ArticleSource {
	return blog.New(cfg.BlogBaseURL, cfg.RequestTimeout, logger)
}

func provideCompleter(opts usecase.Options, cfg *config.Config) (ports.Completer, error) {
	return llm.New(opts.ModelSpec, llm.Options{
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		GoogleAPIKey:    cfg.GoogleAPIKey,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		Timeout:         cfg.RequestTimeout,
	})
}

func provideSummarizer(completer ports.Completer, logger ports.Logger, cfg *config.Config) *usecase.Summarizer {
	return usecase.NewSummarizer(completer, logger, cfg.SummaryRetries)
}

func provideComposer(cfg *config.Config, logger ports.Logger) ports.ImageComposer {
	return imaging.New(cfg.RequestTimeout, logger)
}

func providePublishers(opts usecase.Options, cfg *config.Config, logger ports.Logger) ([]ports.Publisher, error) {
	publishers := make([]ports.Publisher, 0, len(opts.Posts))
	for _, name := range opts.Posts {
		switch name {
		case "stdout":
			publishers = append(publishers, publish.NewStdout(nil))
		case "discord":
			publishers = append(publishers, publish.NewDiscord(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger))
		case "slack":
			publishers = append(publishers, publish.NewSlack(cfg.SlackWebhookURL, cfg.RequestTimeout, logger))
		default:
			return nil, fmt.Errorf("unknown destination %q (expected stdout, discord or slack)", name)
		}
	}
	return publishers, nil
}

func provideSummaryConfig(cfg *config.Config) usecase.YearSummaryConfig {
	return usecase.YearSummaryConfig{OutputDir: cfg.OutputDir}
}

func provideSchedule(cfg *config.Config) string {
	return cfg.ScheduleCron
}
