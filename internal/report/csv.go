package report

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/dgnsrekt/etf-svix/internal/runner"
)

// Row is one line of the results file. Rows for failed expirations carry
// the reason in Error and leave the numeric columns empty; an instrument
// whose chain could not be loaded gets a single row without an expiry.
type Row struct {
	Instrument  string `csv:"instrument"`
	Date        string `csv:"date"`
	Valuation   string `csv:"valuation_date"`
	Expiry      string `csv:"expiry"`
	T           string `csv:"t_years"`
	SVIXPercent string `csv:"svix_percent"`
	SVIXSquared string `csv:"svix_squared"`
	Forward     string `csv:"forward_price"`
	PivotStrike string `csv:"pivot_strike"`
	OTMCount    int    `csv:"otm_count"`
	Warnings    string `csv:"warnings"`
	Error       string `csv:"error"`
}

// Rows flattens reports into result rows in report order.
func Rows(valuation time.Time, reports []runner.InstrumentReport) []*Row {
	val := valuation.Format(time.DateOnly)
	var rows []*Row

	for _, rep := range reports {
		if rep.Err != nil {
			rows = append(rows, &Row{Instrument: rep.Instrument, Date: rep.Date, Valuation: val, Error: rep.Err.Error()})
			continue
		}
		for _, res := range rep.Report.Results {
			rows = append(rows, &Row{
				Instrument:  rep.Instrument,
				Date:        rep.Date,
				Valuation:   val,
				Expiry:      res.Expiry.Format(time.DateOnly),
				T:           Fixed(res.T, 6),
				SVIXPercent: Fixed(res.SVIXPercent, 2),
				SVIXSquared: Fixed(res.SVIXSquared, 8),
				Forward:     Fixed(res.Forward, 4),
				PivotStrike: Fixed(res.PivotStrike, 3),
				OTMCount:    res.OTMCount,
				Warnings:    joinWarnings(res.Warnings),
			})
		}
		for _, f := range rep.Report.Failures {
			rows = append(rows, &Row{
				Instrument: rep.Instrument,
				Date:       rep.Date,
				Valuation:  val,
				Expiry:     f.Expiry.Format(time.DateOnly),
				Error:      f.Reason(),
			})
		}
	}
	return rows
}

// WriteCSV encodes rows with a header line.
func WriteCSV(w io.Writer, rows []*Row) error {
	return gocsv.Marshal(&rows, w)
}
