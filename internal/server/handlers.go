package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/api/generated"
	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/runner"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// Server answers SVIX queries over the chains held by a loader.
type Server struct {
	loader      data.Loader
	engine      *svix.Engine
	runner      *runner.Runner
	defaultRate float64
	logger      *zap.Logger
}

func NewServer(loader data.Loader, engine *svix.Engine, defaultRate float64, logger *zap.Logger) *Server {
	return &Server{
		loader:      loader,
		engine:      engine,
		runner:      runner.New(loader, engine, 1, logger),
		defaultRate: defaultRate,
		logger:      logger,
	}
}

// Compile-time interface verification
var _ generated.StrictServerInterface = (*Server)(nil)

// GetHealth implements generated.StrictServerInterface
func (s *Server) GetHealth(ctx context.Context, request generated.GetHealthRequestObject) (generated.GetHealthResponseObject, error) {
	return generated.GetHealth200JSONResponse{Status: "ok"}, nil
}

// ListInstruments implements generated.StrictServerInterface
func (s *Server) ListInstruments(ctx context.Context, request generated.ListInstrumentsRequestObject) (generated.ListInstrumentsResponseObject, error) {
	date, err := s.resolveDate(request.Params.Date)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return generated.ListInstruments404JSONResponse{Error: err.Error()}, nil
		}
		return generated.ListInstruments500JSONResponse{Error: s.internalError(err)}, nil
	}

	instruments, err := s.loader.Instruments(date)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return generated.ListInstruments404JSONResponse{Error: err.Error()}, nil
		}
		return generated.ListInstruments500JSONResponse{Error: s.internalError(err)}, nil
	}
	if instruments == nil {
		instruments = []string{}
	}

	return generated.ListInstruments200JSONResponse{
		Date:        dateOnly(date),
		Instruments: instruments,
	}, nil
}

// GetSVIX implements generated.StrictServerInterface. The valuation date
// defaults to the chain date and the rate to the configured one.
func (s *Server) GetSVIX(ctx context.Context, request generated.GetSVIXRequestObject) (generated.GetSVIXResponseObject, error) {
	instrument := request.Instrument
	if _, ok := config.LookupInstrument(instrument); !ok {
		return generated.GetSVIX404JSONResponse{Error: fmt.Sprintf("unknown instrument %q", instrument)}, nil
	}

	rate := s.defaultRate
	if request.Params.Rate != nil {
		rate = *request.Params.Rate
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return generated.GetSVIX400JSONResponse{Error: fmt.Sprintf("invalid rate %v", rate)}, nil
		}
	}

	date, err := s.resolveDate(request.Params.Date)
	if err != nil {
		return s.svixLoadError(err), nil
	}

	valuation := dateOnly(date).Time
	if request.Params.Valuation != nil {
		valuation = request.Params.Valuation.Time
	}

	s.logger.Debug("svix request",
		zap.String("instrument", instrument),
		zap.String("date", date),
		zap.Time("valuation", valuation),
		zap.Float64("rate", rate),
	)

	reports, err := s.runner.Run(ctx, date, []string{instrument}, valuation, rate)
	if err != nil {
		s.logger.Warn("svix run aborted", zap.String("instrument", instrument), zap.Error(err))
		return generated.GetSVIX503JSONResponse{Error: err.Error()}, nil
	}
	rep := reports[0]
	if rep.Err != nil {
		return s.svixLoadError(rep.Err), nil
	}

	return generated.GetSVIX200JSONResponse(newSVIXResponse(rep, valuation, rate, s.engine.DayCounter().Name())), nil
}

// resolveDate formats a requested chain date, falling back to the newest
// stored date.
func (s *Server) resolveDate(requested *openapi_types.Date) (string, error) {
	if requested != nil {
		return requested.Format(time.DateOnly), nil
	}
	return s.loader.LatestDate()
}

func (s *Server) internalError(err error) string {
	s.logger.Error("loading data", zap.Error(err))
	return "internal error"
}

func (s *Server) svixLoadError(err error) generated.GetSVIXResponseObject {
	switch {
	case errors.Is(err, data.ErrNotFound):
		return generated.GetSVIX404JSONResponse{Error: err.Error()}
	case errors.Is(err, data.ErrBadRecord):
		return generated.GetSVIX422JSONResponse{Error: err.Error()}
	default:
		return generated.GetSVIX500JSONResponse{Error: s.internalError(err)}
	}
}

func dateOnly(date string) openapi_types.Date {
	t, _ := time.Parse(time.DateOnly, date)
	return openapi_types.Date{Time: t}
}

func newSVIXResponse(rep runner.InstrumentReport, valuation time.Time, rate float64, dayCount string) generated.SVIXResponse {
	resp := generated.SVIXResponse{
		Instrument:    rep.Instrument,
		Date:          dateOnly(rep.Date),
		ValuationDate: openapi_types.Date{Time: valuation},
		RiskFreeRate:  rate,
		DayCount:      dayCount,
		Results:       make([]generated.SVIXResult, 0, len(rep.Report.Results)),
		Failures:      make([]generated.SVIXFailure, 0, len(rep.Report.Failures)),
		Expired:       rep.Report.Expired,
	}

	for _, res := range rep.Report.Results {
		warnings := make([]string, 0, len(res.Warnings))
		for _, w := range res.Warnings {
			warnings = append(warnings, string(w))
		}
		resp.Results = append(resp.Results, generated.SVIXResult{
			Expiry:       openapi_types.Date{Time: res.Expiry},
			TYears:       res.T,
			SvixPercent:  res.SVIXPercent,
			SvixSquared:  res.SVIXSquared,
			ForwardPrice: res.Forward,
			PivotStrike:  res.PivotStrike,
			OtmCount:     res.OTMCount,
			Warnings:     warnings,
		})
	}
	for _, f := range rep.Report.Failures {
		resp.Failures = append(resp.Failures, generated.SVIXFailure{
			Expiry: openapi_types.Date{Time: f.Expiry},
			Reason: f.Reason(),
		})
	}
	return resp
}
