package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/adapter/llm"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/di"
	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/usecase"
)

const defaultModelSpec = "openai/gpt-4.1-nano"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dateStr   string
		modelSpec string
		years     int
		posts     []string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "secon-summary",
		Short: "Summarize past secon.dev diary entries for one calendar day",
		Long: `secon-summary fetches the secon.dev diary entry published on the same
month and day across past years, summarizes each year with an LLM,
composes the cover images into a collage, and publishes the result.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Missing .env is fine, real deployments use the process env.
			_ = godotenv.Load()

			opts := usecase.Options{
				ModelSpec: modelSpec,
				Years:     years,
				Posts:     posts,
				Verbose:   verbose,
			}

			if dateStr != "" {
				date, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD): %w", dateStr, err)
				}
				opts.Date = date
			}

			if _, _, err := llm.ParseModelSpec(modelSpec); err != nil {
				return err
			}

			if years < 1 {
				return fmt.Errorf("--years must be at least 1, got %d", years)
			}

			application, err := di.InitializeApp(opts)
			if err != nil {
				return fmt.Errorf("initialize application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "target date in YYYY-MM-DD form (default: one year before today)")
	cmd.Flags().StringVarP(&modelSpec, "model", "m", defaultModelSpec, "LLM as vendor/model-name (openai, gemini or claude)")
	cmd.Flags().IntVarP(&years, "years", "y", 10, "how many past years to collect")
	cmd.Flags().StringArrayVarP(&posts, "post", "p", []string{"stdout"}, "destination, repeatable (stdout, discord, slack)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
