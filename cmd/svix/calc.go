package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/notify"
	"github.com/dgnsrekt/etf-svix/internal/report"
	"github.com/dgnsrekt/etf-svix/internal/runner"
	"github.com/dgnsrekt/etf-svix/internal/staging"
)

func calcCmd() *cobra.Command {
	var (
		instruments []string
		valuation   string
		rate        float64
		dayCount    string
		writeCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "calc [YYYY-MM-DD]",
		Short: "Compute the SVIX term structure from stored chains",
		Long: `Compute SVIX per expiration for each instrument from the chains stored
under the given date (default: the newest stored date).

The valuation date defaults to engine.valuation_date, or to the chain date
when that is unset.

Examples:
  # Latest snapshot, configured instruments
  svix calc

  # A specific snapshot with another rate and day count
  svix calc 2025-08-04 --rate 0.018 --day-count ACT/365.25

  # Also write results_<date>.csv next to the chains
  svix calc --csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store := data.NewCSVStore(cfg.Output.Directory, logger)

			var date string
			if len(args) == 1 {
				if _, err := parseDate(args[0]); err != nil {
					return err
				}
				date = args[0]
			} else {
				latest, err := store.LatestDate()
				if err != nil {
					return err
				}
				date = latest
			}
			chainDate, _ := time.Parse(time.DateOnly, date)

			engineCfg := cfg.Engine
			if cmd.Flags().Changed("rate") {
				engineCfg.RiskFreeRate = rate
			}
			if cmd.Flags().Changed("day-count") {
				engineCfg.DayCount = dayCount
			}
			if cmd.Flags().Changed("valuation") {
				engineCfg.ValuationDate = valuation
			}

			effective := effectiveInstruments(cfg.Instruments, instruments)
			if err := config.ValidateRunConfig(effective, engineCfg); err != nil {
				return err
			}

			valuationDate, err := engineCfg.Valuation(chainDate)
			if err != nil {
				return err
			}

			engine, err := newEngine(engineCfg, logger)
			if err != nil {
				return err
			}

			start := time.Now()
			reports, err := runner.New(store, engine, engineCfg.Workers, logger).
				Run(ctx, date, effective, valuationDate, engineCfg.RiskFreeRate)
			if err != nil {
				return err
			}

			if err := report.Write(os.Stdout, valuationDate, engineCfg.RiskFreeRate, reports); err != nil {
				return err
			}

			if writeCSV || cfg.Output.ResultsCSV {
				path := report.ResultsPath(cfg.Output.Directory, date)
				rows := report.Rows(valuationDate, reports)
				stg := staging.NewManager(cfg.Output.Directory)
				if _, err := stg.WriteToStaging(path, func(w io.Writer) error {
					return report.WriteCSV(w, rows)
				}); err != nil {
					return fmt.Errorf("writing results: %w", err)
				}
				logger.Info("results written", zap.String("path", path), zap.Int("rows", len(rows)))
			}

			notifyCfg := notify.LoadConfig()
			if err := notifyCfg.Validate(); err != nil {
				logger.Warn("notifications disabled", zap.Error(err))
			} else if err := notify.New(notifyCfg, logger).SendReport(ctx, reports, date, time.Since(start)); err != nil {
				logger.Warn("notification failed", zap.Error(err))
			}

			failed := 0
			for _, rep := range reports {
				if rep.Err != nil {
					failed++
				}
			}
			if failed == len(reports) && failed > 0 {
				return fmt.Errorf("no instrument could be loaded for %s", date)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&instruments, "instruments", nil, "override instruments from config")
	cmd.Flags().StringVar(&valuation, "valuation", "", "valuation date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "continuously compounded risk-free rate, e.g. 0.02")
	cmd.Flags().StringVar(&dayCount, "day-count", "", "day count convention (ACT/365, ACT/365.25, BUS/252)")
	cmd.Flags().BoolVar(&writeCSV, "csv", false, "write results_<date>.csv to the output directory")

	return cmd
}
