package main

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/download"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// chainLocation is where the listing exchanges keep their clocks; a
// snapshot is filed under the trading date there.
const chainLocation = "Asia/Shanghai"

// snapshotDate returns the trading date of now on the listing exchanges.
func snapshotDate(now time.Time, logger *zap.Logger) string {
	loc, err := time.LoadLocation(chainLocation)
	if err != nil {
		logger.Warn("failed to load exchange timezone, using UTC", zap.String("location", chainLocation), zap.Error(err))
		loc = time.UTC
	}
	return now.In(loc).Format(time.DateOnly)
}

// parseDate checks a YYYY-MM-DD argument.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return t, nil
}

// effectiveInstruments applies a command-line override to the configured
// instruments, falling back to the defaults when neither is set.
func effectiveInstruments(configured, override []string) []string {
	instruments := configured
	if len(override) > 0 {
		instruments = override
	}
	if len(instruments) == 0 {
		instruments = config.DefaultInstruments
	}

	out := make([]string, 0, len(instruments))
	seen := make(map[string]bool)
	for _, code := range instruments {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// generateTasks creates one download task per instrument for date.
// Instruments must already be validated.
func generateTasks(instruments []string, date string) []download.Task {
	tasks := make([]download.Task, 0, len(instruments))
	for _, code := range instruments {
		inst, _ := config.LookupInstrument(code)
		tasks = append(tasks, download.Task{
			Instrument: inst.Code,
			Market:     int(inst.Market),
			Date:       date,
		})
	}
	return tasks
}

// newEngine builds the engine for the configured day count.
func newEngine(engineCfg config.EngineConfig, logger *zap.Logger) (*svix.Engine, error) {
	dc, err := svix.NewDayCounter(engineCfg.DayCount, engineCfg.Calendar)
	if err != nil {
		return nil, err
	}
	return svix.NewEngine(svix.Config{
		DayCounter:    dc,
		SpotTolerance: engineCfg.SpotTolerance,
	}, logger), nil
}
