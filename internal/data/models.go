package data

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// QuoteRecord is one row of a persisted option chain file.
type QuoteRecord struct {
	Code            string  `csv:"code"`
	Name            string  `csv:"name"`
	Strike          float64 `csv:"strike"`
	Expiry          Date    `csv:"expiry"`
	OptionType      string  `csv:"option_type"`
	Price           float64 `csv:"price"`
	ImpliedVol      float64 `csv:"implied_vol"`
	UnderlyingPrice float64 `csv:"underlying_price"`
}

// Date is a calendar date stored as YYYY-MM-DD.
type Date struct {
	time.Time
}

// MarshalCSV implements gocsv.TypeMarshaller
func (d Date) MarshalCSV() (string, error) {
	return d.Format(time.DateOnly), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (d *Date) UnmarshalCSV(s string) error {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("expiry %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Quote converts the record to the engine's quote type. Option types are
// matched case-insensitively; anything but CALL or PUT is an error.
func (r QuoteRecord) Quote() (svix.Quote, error) {
	typ := svix.OptionType(strings.ToUpper(strings.TrimSpace(r.OptionType)))
	if !typ.Valid() {
		return svix.Quote{}, fmt.Errorf("option_type %q: %w", r.OptionType, ErrBadRecord)
	}
	return svix.Quote{
		Strike:          r.Strike,
		Expiry:          r.Expiry.Time,
		Type:            typ,
		Price:           r.Price,
		UnderlyingPrice: r.UnderlyingPrice,
	}, nil
}
