package usecase

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// Options are the per-run parameters supplied on the command line. A
// zero Date means "one year before today", resolved at run time so a
// scheduled instance tracks the calendar.
type Options struct {
	Date      time.Time
	ModelSpec string
	Years     int
	Posts     []string
	Verbose   bool
}

// YearSummaryConfig controls where run outputs are persisted.
type YearSummaryConfig struct {
	OutputDir string
}

// YearSummary orchestrates collect → summarize/compose → persist →
// publish for one run.
type YearSummary struct {
	collector  *Collector
	summarizer *Summarizer
	composer   ports.ImageComposer
	publishers []ports.Publisher
	logger     ports.Logger
	opts       Options
	outputDir  string
}

// NewYearSummary constructs the pipeline use case.
func NewYearSummary(
	collector *Collector,
	summarizer *Summarizer,
	composer ports.ImageComposer,
	publishers []ports.Publisher,
	logger ports.Logger,
	opts Options,
	cfg YearSummaryConfig,
) *YearSummary {
	return &YearSummary{
		collector:  collector,
		summarizer: summarizer,
		composer:   composer,
		publishers: publishers,
		logger:     logger,
		opts:       opts,
		outputDir:  cfg.OutputDir,
	}
}

// Run executes the pipeline once. Per-year and per-destination failures
// are contained in the returned report; the error is non-nil only for
// the fatal cases: zero collected articles or zero delivered
// destinations.
func (y *YearSummary) Run(ctx context.Context) (*model.RunReport, error) {
	start := time.Now()

	date := y.opts.Date
	if date.IsZero() {
		date = time.Now().AddDate(-1, 0, 0)
	}

	y.logger.Info(ctx, "collecting entries", "date", date.Format("2006-01-02"), "years", y.opts.Years)
	collection := y.collector.Collect(ctx, date, y.opts.Years)
	articles := collection.Articles()

	report := &model.RunReport{
		TargetDate:     date,
		YearsRequested: y.opts.Years,
		YearsCollected: len(articles),
	}
	for _, miss := range collection.Missing() {
		report.MissingYears = append(report.MissingYears, miss.Year)
	}

	if len(articles) == 0 {
		return report, fmt.Errorf("no articles found for %s", date.Format("2006-01-02"))
	}

	// Summary generation and collage composition are independent.
	var (
		entries []model.SummaryEntry
		collage image.Image
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries = y.summarizer.Summarize(gctx, collection)
		return nil
	})
	g.Go(func() error {
		img, err := y.composer.Compose(gctx, articles)
		switch {
		case err == nil:
			collage = img
		case errors.Is(err, model.ErrNoImages):
			y.logger.Info(gctx, "no cover images retrievable, skipping collage")
		default:
			y.logger.Error(gctx, "collage composition failed", "error", err)
		}
		return nil
	})
	_ = g.Wait()

	report.SummaryCount = len(entries)
	summaryText := model.RenderSummaryText(entries)

	if path, err := y.saveSummary(date, summaryText); err != nil {
		y.logger.Error(ctx, "saving summary text failed", "error", err)
	} else {
		report.TextPath = path
		y.logger.Debug(ctx, "summary text saved", "path", path)
	}

	if collage != nil {
		if path, err := y.saveCollage(date, collage); err != nil {
			y.logger.Error(ctx, "saving collage failed", "error", err)
		} else {
			report.ImagePath = path
			y.logger.Debug(ctx, "collage saved", "path", path)
		}
	}

	post := model.SummaryPost{
		Text:      summaryText,
		Articles:  articles,
		ImagePath: report.ImagePath,
	}
	for _, publisher := range y.publishers {
		err := publisher.Publish(ctx, post)
		if err != nil {
			y.logger.Error(ctx, "publish failed", "destination", publisher.Name(), "error", err)
		}
		report.Posts = append(report.Posts, model.PostResult{Destination: publisher.Name(), Err: err})
	}

	if len(y.publishers) == 0 {
		return report, fmt.Errorf("no destinations configured")
	}
	if report.Delivered() == 0 {
		return report, fmt.Errorf("all %d destinations failed", len(report.Posts))
	}

	y.logger.Info(ctx, "run completed",
		"duration", time.Since(start),
		"years_collected", report.YearsCollected,
		"summaries", report.SummaryCount,
		"delivered", report.Delivered())
	return report, nil
}

// saveSummary writes the document under texts/YYYYMMDD keyed by the
// model spec.
func (y *YearSummary) saveSummary(date time.Time, text string) (string, error) {
	vendor, modelName, _ := strings.Cut(y.opts.ModelSpec, "/")
	modelName = strings.ReplaceAll(modelName, "/", "_")

	dir := filepath.Join(y.outputDir, "texts", date.Format("20060102"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", vendor, modelName))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// saveCollage writes the composed image under images/YYYYMMDD.png.
func (y *YearSummary) saveCollage(date time.Time, img image.Image) (string, error) {
	dir := filepath.Join(y.outputDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, date.Format("20060102")+".png")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}
