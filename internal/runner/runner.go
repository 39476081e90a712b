// Package runner computes SVIX term structures for a batch of instruments
// from stored option chains.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// InstrumentReport is the outcome for one instrument. Err is set when the
// chain could not be loaded; Report is then empty.
type InstrumentReport struct {
	Instrument string
	Date       string
	Report     svix.Report
	Err        error
}

type Runner struct {
	loader  data.Loader
	engine  *svix.Engine
	workers int
	logger  *zap.Logger
}

func New(loader data.Loader, engine *svix.Engine, workers int, logger *zap.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		loader:  loader,
		engine:  engine,
		workers: workers,
		logger:  logger,
	}
}

// Run loads the chain stored on date for every instrument and runs the
// engine on it. Reports come back in the order of instruments. A load
// failure is kept on that instrument's report; only context cancellation
// fails the run.
func (r *Runner) Run(ctx context.Context, date string, instruments []string, valuation time.Time, rate float64) ([]InstrumentReport, error) {
	runID := uuid.New().String()
	logger := r.logger.With(zap.String("run_id", runID), zap.String("date", date))
	logger.Info("starting run",
		zap.Strings("instruments", instruments),
		zap.Time("valuation", valuation),
		zap.Float64("rate", rate),
		zap.String("day_count", r.engine.DayCounter().Name()),
	)

	start := time.Now()
	reports := make([]InstrumentReport, len(instruments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, instrument := range instruments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = r.runOne(gctx, logger, date, instrument, valuation, rate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("run complete", zap.Duration("elapsed", time.Since(start)))
	return reports, nil
}

func (r *Runner) runOne(ctx context.Context, logger *zap.Logger, date, instrument string, valuation time.Time, rate float64) InstrumentReport {
	rep := InstrumentReport{Instrument: instrument, Date: date}

	quotes, err := r.loader.LoadQuotes(ctx, date, instrument)
	if err != nil {
		logger.Warn("load failed", zap.String("instrument", instrument), zap.Error(err))
		rep.Err = err
		return rep
	}

	rep.Report = r.engine.Calculate(quotes, valuation, rate)
	logger.Info("instrument computed",
		zap.String("instrument", instrument),
		zap.Int("quotes", len(quotes)),
		zap.Int("results", len(rep.Report.Results)),
		zap.Int("failures", len(rep.Report.Failures)),
		zap.Int("expired", rep.Report.Expired),
	)
	return rep
}
