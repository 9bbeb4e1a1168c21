package main

import (
	"context"
	"errors"

	"github.com/michaelvbend/ajax-scraper/internal/transport/schedule"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCron string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the match list once and publish it, or keep doing so on a cron schedule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := cfg.Validate(); err != nil {
			return err
		}
		if cmd.Flags().Changed("cron") {
			cfg.Schedule.Cron = runCron
		}

		ctx := cmd.Context()
		runner, closeRunner, err := newRunner(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeRunner()

		if cfg.Schedule.Cron == "" {
			log.Info("ajax-scraper starting", zap.String("site", cfg.Site.BaseURL), zap.String("env", cfg.Env))
			return runner.Run(ctx)
		}

		scheduler, err := schedule.New(log, cfg.Schedule.Location)
		if err != nil {
			return err
		}
		err = scheduler.Add(ctx, cfg.Schedule.Cron, func(ctx context.Context) {
			if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("scheduled job failed", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}

		log.Info("ajax-scraper scheduled",
			zap.String("cron", cfg.Schedule.Cron),
			zap.String("location", cfg.Schedule.Location),
		)
		scheduler.Run(ctx)
		log.Info("shutdown signal received")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCron, "cron", "", "cron spec to run on (overrides schedule.cron; empty runs once)")
}
