// Package report renders SVIX runs as console tables and result files.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/runner"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

const (
	colWidth  = 15
	ruleWidth = 47
)

// Fixed rounds v half away from zero and formats it with places decimals.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Percent formats a rate such as 0.02 as "2.00%".
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// Write renders one table per instrument report.
func Write(w io.Writer, valuation time.Time, rate float64, reports []runner.InstrumentReport) error {
	var b strings.Builder
	for i, rep := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeInstrument(&b, valuation, rate, rep)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeInstrument(b *strings.Builder, valuation time.Time, rate float64, rep runner.InstrumentReport) {
	title := rep.Instrument
	if inst, ok := config.LookupInstrument(rep.Instrument); ok {
		title += " " + inst.Name
	}
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(b, "--- SVIX %s (chain %s) ---\n", title, rep.Date)
	fmt.Fprintf(b, "valuation date = %s, risk-free rate = %s\n\n", valuation.Format(time.DateOnly), Percent(rate))

	if rep.Err != nil {
		fmt.Fprintf(b, "error: %v\n", rep.Err)
		return
	}

	fmt.Fprintf(b, "%-*s %-*s %s\n", colWidth, "expiry", colWidth, "SVIX (%)", "forward (F)")
	b.WriteString(rule + "\n")

	for _, line := range lines(rep.Report) {
		b.WriteString(line + "\n")
	}

	b.WriteString(rule + "\n")
	if rep.Report.Expired > 0 {
		fmt.Fprintf(b, "expired expirations skipped: %d\n", rep.Report.Expired)
	}
}

// lines merges results and failures back into expiry order.
func lines(r svix.Report) []string {
	var out []string
	i, j := 0, 0
	for i < len(r.Results) || j < len(r.Failures) {
		if j >= len(r.Failures) || (i < len(r.Results) && r.Results[i].Expiry.Before(r.Failures[j].Expiry)) {
			out = append(out, resultLine(r.Results[i]))
			i++
			continue
		}
		f := r.Failures[j]
		out = append(out, fmt.Sprintf("%-*s %-*s %-*s %s", colWidth, f.Expiry.Format(time.DateOnly), colWidth, "failed", colWidth, "N/A", f.Reason()))
		j++
	}
	return out
}

func resultLine(res svix.Result) string {
	line := fmt.Sprintf("%-*s %-*s %s", colWidth, res.Expiry.Format(time.DateOnly), colWidth, Fixed(res.SVIXPercent, 2), Fixed(res.Forward, 4))
	if res.LowConfidence() {
		line += "  [low confidence: " + joinWarnings(res.Warnings) + "]"
	}
	return line
}

func joinWarnings(ws []svix.Warning) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = string(w)
	}
	return strings.Join(s, ",")
}

// ResultsPath is where the results file of the chains fetched on date goes.
func ResultsPath(dir, date string) string {
	return filepath.Join(dir, fmt.Sprintf("results_%s.csv", date))
}
