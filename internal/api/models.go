package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgnsrekt/etf-svix/internal/data"
	"github.com/dgnsrekt/etf-svix/internal/svix"
)

// ChainRow is one option contract as listed by the quote server.
type ChainRow struct {
	Code            string    `json:"f12"`
	Name            string    `json:"f14"`
	LastPrice       FlexFloat `json:"f2"`
	ImpliedVol      FlexFloat `json:"f249"`
	Expiry          FlexFloat `json:"f301"`
	UnderlyingName  string    `json:"f333"`
	UnderlyingPrice FlexFloat `json:"f334"`
}

// FlexFloat decodes a numeric field that the server sends as "-" when no
// value exists.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = FlexFloat{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "-" {
			*f = FlexFloat{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", s, err)
		}
		*f = FlexFloat{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat{Value: v, Valid: true}
	return nil
}

// StrikeFromName reads the strike encoded in the trailing digits of a
// contract name, in thousandths. Adjusted contracts carry an extra "A"
// suffix after the digits.
func StrikeFromName(name string) (float64, error) {
	r := []rune(strings.TrimSpace(name))
	if len(r) > 0 && r[len(r)-1] == 'A' {
		r = r[:len(r)-1]
	}
	if len(r) < 4 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableName, name)
	}
	v, err := strconv.ParseFloat(string(r[len(r)-4:]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableName, name)
	}
	return v / 1000, nil
}

// TypeFromName classifies a contract as a call when its name carries the
// call marker 购, and as a put otherwise.
func TypeFromName(name string) svix.OptionType {
	if strings.Contains(name, "购") {
		return svix.Call
	}
	return svix.Put
}

// Record converts the row to the persisted quote form. Rows without a last
// price, underlying price or expiry cannot be priced and return an error.
func (r ChainRow) Record() (data.QuoteRecord, error) {
	if !r.LastPrice.Valid {
		return data.QuoteRecord{}, fmt.Errorf("%s: missing last price", r.Code)
	}
	if !r.UnderlyingPrice.Valid {
		return data.QuoteRecord{}, fmt.Errorf("%s: missing underlying price", r.Code)
	}
	if !r.Expiry.Valid {
		return data.QuoteRecord{}, fmt.Errorf("%s: missing expiry", r.Code)
	}
	expiry, err := time.Parse("20060102", strconv.FormatInt(int64(r.Expiry.Value), 10))
	if err != nil {
		return data.QuoteRecord{}, fmt.Errorf("%s: expiry %v: %w", r.Code, r.Expiry.Value, err)
	}
	strike, err := StrikeFromName(r.Name)
	if err != nil {
		return data.QuoteRecord{}, err
	}

	return data.QuoteRecord{
		Code:            r.Code,
		Name:            r.Name,
		Strike:          strike,
		Expiry:          data.Date{Time: expiry},
		OptionType:      string(TypeFromName(r.Name)),
		Price:           r.LastPrice.Value,
		ImpliedVol:      r.ImpliedVol.Value,
		UnderlyingPrice: r.UnderlyingPrice.Value,
	}, nil
}
