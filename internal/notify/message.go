package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgnsrekt/etf-svix/internal/download"
	"github.com/dgnsrekt/etf-svix/internal/report"
	"github.com/dgnsrekt/etf-svix/internal/runner"
)

const maxListedErrors = 3

// FormatDownloadMessage creates a download summary body.
func FormatDownloadMessage(result *download.BatchResult, duration time.Duration) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Instruments: %d\n", result.Total))
	sb.WriteString(fmt.Sprintf("Downloaded: %d\n", result.Success))
	sb.WriteString(fmt.Sprintf("Skipped: %d\n", result.Skipped))
	sb.WriteString(fmt.Sprintf("No data: %d\n", result.NotFound))
	sb.WriteString(fmt.Sprintf("Quotes: %d (dropped %d)\n", result.Rows, result.Dropped))
	if result.Truncated > 0 {
		sb.WriteString(fmt.Sprintf("Cut off at max pages: %d\n", result.Truncated))
	}
	sb.WriteString(fmt.Sprintf("Duration: %s", duration.Round(time.Second)))

	return sb.String()
}

// FormatFailureMessage creates a failed download body.
func FormatFailureMessage(result *download.BatchResult, duration time.Duration, err error) string {
	var sb strings.Builder

	if result != nil {
		sb.WriteString(fmt.Sprintf("Instruments: %d\n", result.Total))
		sb.WriteString(fmt.Sprintf("Success: %d\n", result.Success))
		sb.WriteString(fmt.Sprintf("Failed: %d\n", result.Failed))
	}
	sb.WriteString(fmt.Sprintf("Duration: %s", duration.Round(time.Second)))

	if err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", err))
	}

	if result != nil && len(result.Errors) > 0 {
		sb.WriteString("\n\nErrors:\n")
		limit := min(len(result.Errors), maxListedErrors)
		for i := 0; i < limit; i++ {
			sb.WriteString(fmt.Sprintf("- %s\n", result.Errors[i]))
		}
		if len(result.Errors) > maxListedErrors {
			sb.WriteString(fmt.Sprintf("... and %d more errors", len(result.Errors)-maxListedErrors))
		}
	}

	return sb.String()
}

// FormatReportMessage lists the nearest computed expiry per instrument.
func FormatReportMessage(reports []runner.InstrumentReport, duration time.Duration) string {
	var sb strings.Builder

	for _, rep := range reports {
		switch {
		case rep.Err != nil:
			sb.WriteString(fmt.Sprintf("%s: error: %v\n", rep.Instrument, rep.Err))
		case len(rep.Report.Results) == 0:
			sb.WriteString(fmt.Sprintf("%s: no result (%d failed)\n", rep.Instrument, len(rep.Report.Failures)))
		default:
			front := rep.Report.Results[0]
			sb.WriteString(fmt.Sprintf("%s: %s%% (%s, F=%s)",
				rep.Instrument,
				report.Fixed(front.SVIXPercent, 2),
				front.Expiry.Format(time.DateOnly),
				report.Fixed(front.Forward, 4),
			))
			if n := len(rep.Report.Failures); n > 0 {
				sb.WriteString(fmt.Sprintf(", %d failed", n))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString(fmt.Sprintf("Duration: %s", duration.Round(time.Second)))

	return sb.String()
}
