package svix

import (
	"sort"
	"time"
)

// OptionType is the right of an option contract.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// Valid reports whether t is CALL or PUT.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

// Quote is one option price observation for an instrument.
type Quote struct {
	Strike          float64
	Expiry          time.Time
	Type            OptionType
	Price           float64
	UnderlyingPrice float64
}

// ExpirationGroup holds every quote of one instrument sharing an expiry.
// T is the time to expiration in years under the engine's day count.
type ExpirationGroup struct {
	Expiry time.Time
	T      float64
	Quotes []Quote
}

// ForwardEstimate is the put-call parity forward for one expiration.
type ForwardEstimate struct {
	PivotStrike float64
	Forward     float64
}

// WeightedOption is an out-of-the-money quote with its strike interval.
type WeightedOption struct {
	Strike float64
	Type   OptionType
	Price  float64
	DeltaK float64
}

// Warning marks a result computed from data too sparse to trust fully.
type Warning string

const (
	WarnEmptyOTM         Warning = "empty_otm"
	WarnSingleOTM        Warning = "single_otm"
	WarnNegativeVariance Warning = "negative_variance_clamped"
)

// Result is the SVIX estimate for one expiration.
type Result struct {
	Expiry      time.Time
	T           float64
	SVIXPercent float64
	SVIXSquared float64
	Forward     float64
	PivotStrike float64
	OTMCount    int
	Warnings    []Warning
}

// LowConfidence reports whether any warning is attached.
func (r Result) LowConfidence() bool {
	return len(r.Warnings) > 0
}

// Failure records an expiration that produced no result.
type Failure struct {
	Expiry time.Time
	Err    error
}

// Reason returns the failure message.
func (f Failure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Report is the outcome of one Calculate call. Results and Failures are
// ordered by expiry ascending.
type Report struct {
	Results  []Result
	Failures []Failure
	Expired  int
}

// GroupByExpiry partitions quotes by expiry date and attaches the year
// fraction from valuation. Groups with T <= 0 are dropped; the second return
// value is how many were dropped. The input slice is not modified.
func GroupByExpiry(quotes []Quote, valuation time.Time, dc DayCounter) ([]ExpirationGroup, int) {
	byExpiry := make(map[time.Time][]Quote)
	for _, q := range quotes {
		key := truncateDay(q.Expiry)
		byExpiry[key] = append(byExpiry[key], q)
	}

	expiries := make([]time.Time, 0, len(byExpiry))
	for e := range byExpiry {
		expiries = append(expiries, e)
	}
	sort.Slice(expiries, func(i, j int) bool { return expiries[i].Before(expiries[j]) })

	groups := make([]ExpirationGroup, 0, len(expiries))
	expired := 0
	for _, e := range expiries {
		t := dc.YearFraction(truncateDay(valuation), e)
		if !(t > 0) {
			expired++
			continue
		}
		groups = append(groups, ExpirationGroup{Expiry: e, T: t, Quotes: byExpiry[e]})
	}
	return groups, expired
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
