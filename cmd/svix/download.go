package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/api"
	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/download"
	"github.com/dgnsrekt/etf-svix/internal/notify"
	"github.com/dgnsrekt/etf-svix/internal/staging"
)

func downloadCmd() *cobra.Command {
	var (
		dryRun      bool
		date        string
		instruments []string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Snapshot the option chains of the configured ETFs",
		Long: `Download the current option chain of each configured ETF from the quote
server and store it as <output>/<date>/<instrument>.csv.

The source only serves live quotes, so the snapshot is filed under today's
trading date unless --date says otherwise. Existing files are never
overwritten.

Examples:
  # Snapshot the configured instruments
  svix download

  # Override instruments from config
  svix download --instruments 510050,159915

  # Dry run to see what would be downloaded
  svix download --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if date == "" {
				date = snapshotDate(time.Now(), logger)
			} else if _, err := parseDate(date); err != nil {
				return err
			}

			effective := effectiveInstruments(cfg.Instruments, instruments)
			if err := config.ValidateRunConfig(effective, cfg.Engine); err != nil {
				return err
			}

			tasks := generateTasks(effective, date)
			logger.Info("generated tasks", zap.Int("count", len(tasks)), zap.String("date", date))

			if dryRun {
				for _, t := range tasks {
					fmt.Printf("Would download: %s (market %d)\n", t, t.Market)
				}
				return nil
			}

			notifyCfg := notify.LoadConfig()
			if err := notifyCfg.Validate(); err != nil {
				return err
			}
			notifier := notify.New(notifyCfg, logger)

			client := api.NewClient(
				cfg.Source.BaseURL,
				cfg.Source.Token,
				cfg.Source.PageSize,
				cfg.Source.RatePerSecond,
				time.Duration(cfg.Source.TimeoutSec)*time.Second,
				logger,
			)

			stgMgr := staging.NewManager(cfg.Output.Directory)
			dlMgr := download.NewManager(client, stgMgr, cfg.Source.MaxPages, cfg.Source.PageSize, logger)

			start := time.Now()
			result, err := dlMgr.Execute(ctx, tasks)
			if err != nil {
				_ = stgMgr.CleanupStaging(date)
				// ctx is likely cancelled here
				if nerr := notifier.SendDownload(context.WithoutCancel(ctx), result, date, time.Since(start), err); nerr != nil {
					logger.Warn("notification failed", zap.Error(nerr))
				}
				return err
			}

			// Commit staging to final location and cleanup (only if there were actual downloads)
			if result.Success > 0 {
				if err := stgMgr.CommitStaging(date); err != nil {
					logger.Warn("failed to commit staging", zap.String("date", date), zap.Error(err))
				}
			}
			if err := stgMgr.CleanupStaging(date); err != nil {
				logger.Warn("failed to cleanup staging", zap.String("date", date), zap.Error(err))
			}

			logger.Info("download complete",
				zap.Int("total", result.Total),
				zap.Int("success", result.Success),
				zap.Int("skipped", result.Skipped),
				zap.Int("not_found", result.NotFound),
				zap.Int("failed", result.Failed),
				zap.Int("rows", result.Rows),
				zap.Int("dropped", result.Dropped),
			)

			if nerr := notifier.SendDownload(ctx, result, date, time.Since(start), nil); nerr != nil {
				logger.Warn("notification failed", zap.Error(nerr))
			}

			if result.Failed > 0 {
				for _, e := range result.Errors {
					logger.Error("download error", zap.String("error", e))
				}
				return fmt.Errorf("%d downloads failed", result.Failed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be downloaded")
	cmd.Flags().StringVar(&date, "date", "", "file the snapshot under this date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&instruments, "instruments", nil, "override instruments from config")

	return cmd
}
