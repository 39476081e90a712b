package config

import "strings"

// Market identifies the exchange segment of an underlying in source queries.
type Market int

const (
	MarketShanghai Market = 10
	MarketShenzhen Market = 12
)

// Instrument is an ETF whose listed options can be downloaded.
type Instrument struct {
	Code   string
	Name   string
	Market Market
}

// ValidInstruments lists the supported option underlyings by code
var ValidInstruments = map[string]Instrument{
	"510050": {Code: "510050", Name: "SSE 50 ETF", Market: MarketShanghai},
	"510300": {Code: "510300", Name: "CSI 300 ETF (SH)", Market: MarketShanghai},
	"510500": {Code: "510500", Name: "CSI 500 ETF (SH)", Market: MarketShanghai},
	"588000": {Code: "588000", Name: "STAR 50 ETF", Market: MarketShanghai},
	"588080": {Code: "588080", Name: "STAR 50 ETF (E Fund)", Market: MarketShanghai},
	"159919": {Code: "159919", Name: "CSI 300 ETF (SZ)", Market: MarketShenzhen},
	"159922": {Code: "159922", Name: "CSI 500 ETF (SZ)", Market: MarketShenzhen},
	"159915": {Code: "159915", Name: "ChiNext ETF", Market: MarketShenzhen},
	"159901": {Code: "159901", Name: "SZSE 100 ETF", Market: MarketShenzhen},
}

// DefaultInstruments are downloaded when no instruments are configured
var DefaultInstruments = []string{"510050", "510300", "159919"}

// LookupInstrument resolves a configured code to its instrument.
func LookupInstrument(code string) (Instrument, bool) {
	inst, ok := ValidInstruments[strings.TrimSpace(code)]
	return inst, ok
}
