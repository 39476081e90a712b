// Package svix estimates the SVIX index of an option chain, one value per
// expiration: a put-call parity forward, the out-of-the-money strip around it
// and the discretised strike integral of its prices.
package svix

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Config controls an Engine.
type Config struct {
	DayCounter    DayCounter
	SpotTolerance float64
}

// Engine runs the per-expiration pipeline. It holds no state between calls
// and is safe for concurrent use.
type Engine struct {
	dc     DayCounter
	tol    float64
	logger *zap.Logger
}

func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	dc := cfg.DayCounter
	if dc == nil {
		dc = ActualDayCounter{Basis: daysPerYear}
	}
	tol := cfg.SpotTolerance
	if !(tol > 0) {
		tol = DefaultSpotTolerance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{dc: dc, tol: tol, logger: logger}
}

// DayCounter returns the convention used for time to expiry.
func (e *Engine) DayCounter() DayCounter {
	return e.dc
}

// Calculate computes one Result per live expiration of quotes. An expiration
// that cannot be computed is recorded in Failures and does not affect the
// others.
func (e *Engine) Calculate(quotes []Quote, valuation time.Time, rate float64) Report {
	groups, expired := GroupByExpiry(quotes, valuation, e.dc)
	report := Report{
		Results: make([]Result, 0, len(groups)),
		Expired: expired,
	}
	if expired > 0 {
		e.logger.Debug("dropped expired groups", zap.Int("count", expired))
	}

	for _, g := range groups {
		res, err := e.calculateGroup(g, rate)
		if err != nil {
			e.logger.Debug("expiration failed",
				zap.String("expiry", g.Expiry.Format(time.DateOnly)),
				zap.Error(err),
			)
			report.Failures = append(report.Failures, Failure{Expiry: g.Expiry, Err: err})
			continue
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (e *Engine) calculateGroup(g ExpirationGroup, rate float64) (Result, error) {
	if err := validateQuotes(g.Quotes); err != nil {
		return Result{}, err
	}
	fe, err := EstimateForward(g, rate)
	if err != nil {
		return Result{}, err
	}
	weighted := SelectAndWeight(g, fe.Forward)
	return ComputeSVIX(g, fe, weighted, rate, e.tol)
}

func validateQuotes(quotes []Quote) error {
	for i, q := range quotes {
		switch {
		case !q.Type.Valid():
			return fmt.Errorf("%w: quote %d has option type %q", ErrInvalidInput, i, q.Type)
		case !positiveFinite(q.Strike):
			return fmt.Errorf("%w: quote %d has strike %v", ErrInvalidInput, i, q.Strike)
		case !positiveFinite(q.UnderlyingPrice):
			return fmt.Errorf("%w: quote %d has underlying price %v", ErrInvalidInput, i, q.UnderlyingPrice)
		case math.IsNaN(q.Price) || math.IsInf(q.Price, 0) || q.Price < 0:
			return fmt.Errorf("%w: quote %d has price %v", ErrInvalidInput, i, q.Price)
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
