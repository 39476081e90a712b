package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// ValidationErrors collects all validation errors
type ValidationErrors struct {
	InvalidInstruments []string
	InvalidDayCount    string
	InvalidCalendar    string
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.InvalidInstruments) > 0 || e.InvalidDayCount != "" || e.InvalidCalendar != ""
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")

	if len(e.InvalidInstruments) > 0 {
		sb.WriteString("\nInvalid instruments:\n")
		for _, code := range e.InvalidInstruments {
			sb.WriteString(fmt.Sprintf("  - %s\n", code))
		}
		sb.WriteString(fmt.Sprintf("\nValid instruments: %s\n", validInstrumentsList()))
	}

	if e.InvalidDayCount != "" {
		sb.WriteString(fmt.Sprintf("\nInvalid day count: %s\n", e.InvalidDayCount))
		sb.WriteString(fmt.Sprintf("\nValid day counts: %s, %s, %s\n",
			svix.DayCountAct365, svix.DayCountAct36525, svix.DayCountBusiness))
	}

	if e.InvalidCalendar != "" {
		sb.WriteString(fmt.Sprintf("\nInvalid calendar: %s (BUS/252 supports: %s)\n",
			e.InvalidCalendar, strings.Join(svix.ExchangeCalendars, ", ")))
	}

	return sb.String()
}

// ValidateRunConfig validates instruments and engine settings
func ValidateRunConfig(instruments []string, engine EngineConfig) error {
	errs := &ValidationErrors{}

	for _, code := range instruments {
		if _, ok := LookupInstrument(code); !ok {
			errs.InvalidInstruments = append(errs.InvalidInstruments, code)
		}
	}

	switch strings.ToUpper(strings.TrimSpace(engine.DayCount)) {
	case "", svix.DayCountAct365, svix.DayCountAct36525:
	case svix.DayCountBusiness:
		if _, err := svix.ExchangeCalendar(engine.Calendar); err != nil {
			errs.InvalidCalendar = engine.Calendar
		}
	default:
		errs.InvalidDayCount = engine.DayCount
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validInstrumentsList() string {
	codes := make([]string, 0, len(ValidInstruments))
	for code := range ValidInstruments {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}
