package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/model"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/usecase"
)

// App runs the year summary pipeline, either once or on a cron
// schedule when one is configured.
type App struct {
	cron     *cron.Cron
	usecase  *usecase.YearSummary
	logger   ports.Logger
	schedule string
}

// New constructs an App instance. schedule may be empty, in which case
// Run executes the pipeline exactly once.
func New(summary *usecase.YearSummary, logger ports.Logger, schedule string) *App {
	return &App{
		cron:     cron.New(),
		usecase:  summary,
		logger:   logger,
		schedule: schedule,
	}
}

// Run executes the pipeline. Without a schedule the single run's error
// is returned directly; with one, the first run happens immediately and
// subsequent runs follow the cron expression until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.schedule == "" {
		report, err := a.usecase.Run(ctx)
		a.logReport(ctx, report)
		return err
	}

	if err := a.scheduleJob(); err != nil {
		return err
	}

	a.logger.Info(ctx, "running first summary immediately")
	report, err := a.usecase.Run(ctx)
	a.logReport(ctx, report)
	if err != nil {
		a.logger.Error(ctx, "initial summary run failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		report, err := a.usecase.Run(ctx)
		a.logReport(ctx, report)
		if err != nil {
			a.logger.Error(ctx, "scheduled summary run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	return nil
}

func (a *App) logReport(ctx context.Context, report *model.RunReport) {
	if report == nil {
		return
	}
	a.logger.Info(ctx, "run report",
		"date", report.TargetDate.Format("2006-01-02"),
		"years_requested", report.YearsRequested,
		"years_collected", report.YearsCollected,
		"missing_years", report.MissingYears,
		"summaries", report.SummaryCount,
		"text_path", report.TextPath,
		"image_path", report.ImagePath,
		"delivered", report.Delivered())
}
