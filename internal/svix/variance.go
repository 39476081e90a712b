package svix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultSpotTolerance is the largest relative spread of underlying prices
// accepted inside one expiration group.
const DefaultSpotTolerance = 1e-6

// ComputeSVIX aggregates the weighted OTM prices into
//
//	SVIX^2 = (2 / T) * (1 / R_f) * sum(price * dK) / S^2,  R_f = exp(r*T)
//
// and reports 100*sqrt(max(SVIX^2, 0)).
func ComputeSVIX(g ExpirationGroup, fe ForwardEstimate, weighted []WeightedOption, rate, spotTolerance float64) (Result, error) {
	if err := checkHorizon(g.T, rate); err != nil {
		return Result{}, err
	}
	spot, err := groupSpot(g, spotTolerance)
	if err != nil {
		return Result{}, err
	}

	prices := make([]float64, len(weighted))
	widths := make([]float64, len(weighted))
	for i, w := range weighted {
		prices[i] = w.Price
		widths[i] = w.DeltaK
	}
	integral := floats.Dot(prices, widths)

	rf := math.Exp(rate * g.T)
	svix2 := (2 / g.T) * (1 / rf) * (integral / (spot * spot))

	res := Result{
		Expiry:      g.Expiry,
		T:           g.T,
		SVIXSquared: svix2,
		Forward:     fe.Forward,
		PivotStrike: fe.PivotStrike,
		OTMCount:    len(weighted),
	}
	switch len(weighted) {
	case 0:
		res.Warnings = append(res.Warnings, WarnEmptyOTM)
	case 1:
		res.Warnings = append(res.Warnings, WarnSingleOTM)
	}
	var clamped bool
	res.SVIXPercent, clamped = svixPercent(svix2)
	if clamped {
		res.Warnings = append(res.Warnings, WarnNegativeVariance)
	}
	return res, nil
}

func svixPercent(svix2 float64) (float64, bool) {
	if svix2 < 0 {
		return 0, true
	}
	return 100 * math.Sqrt(svix2), false
}

// groupSpot returns the common underlying price of the group, failing when
// quotes disagree by more than tol relative to the first quote.
func groupSpot(g ExpirationGroup, tol float64) (float64, error) {
	if len(g.Quotes) == 0 {
		return 0, fmt.Errorf("%w: expiration group has no quotes", ErrInsufficientData)
	}
	spot := g.Quotes[0].UnderlyingPrice
	if !(spot > 0) || math.IsInf(spot, 0) {
		return 0, fmt.Errorf("%w: underlying price %v must be positive", ErrInvalidInput, spot)
	}
	for _, q := range g.Quotes[1:] {
		if math.Abs(q.UnderlyingPrice-spot)/spot > tol {
			return 0, fmt.Errorf("%w: %v vs %v", ErrInconsistentSpot, q.UnderlyingPrice, spot)
		}
	}
	return spot, nil
}
