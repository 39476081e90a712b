package svix

import (
	"errors"
	"math"
	"testing"
)

func TestComputeSVIX_EmptyStripIsZero(t *testing.T) {
	expiry := day(2025, 8, 27)
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.0, Call, 0.1, expiry, 4.0),
	}}

	res, err := ComputeSVIX(g, ForwardEstimate{PivotStrike: 4.0, Forward: 4.0}, nil, 0.02, DefaultSpotTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SVIXPercent != 0 {
		t.Errorf("expected SVIX 0, got %v", res.SVIXPercent)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != WarnEmptyOTM {
		t.Errorf("expected empty_otm warning, got %v", res.Warnings)
	}
}

func TestComputeSVIX_SingleStripFlagged(t *testing.T) {
	expiry := day(2025, 8, 27)
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.2, Call, 0.1, expiry, 4.0),
	}}
	weighted := []WeightedOption{{Strike: 4.2, Type: Call, Price: 0.1}}

	res, err := ComputeSVIX(g, ForwardEstimate{Forward: 4.0}, weighted, 0.02, DefaultSpotTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SVIXPercent != 0 || !res.LowConfidence() || res.Warnings[0] != WarnSingleOTM {
		t.Errorf("expected zero SVIX flagged single_otm, got %+v", res)
	}
}

func TestComputeSVIX_SpotChecks(t *testing.T) {
	expiry := day(2025, 8, 27)
	fe := ForwardEstimate{Forward: 4.0}

	withinTol := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.0, Call, 0.1, expiry, 4.0),
		quote(4.0, Put, 0.1, expiry, 4.0*(1+5e-7)),
	}}
	if _, err := ComputeSVIX(withinTol, fe, nil, 0.02, DefaultSpotTolerance); err != nil {
		t.Errorf("spread within tolerance rejected: %v", err)
	}

	outsideTol := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.0, Call, 0.1, expiry, 4.0),
		quote(4.0, Put, 0.1, expiry, 4.0*(1+1e-5)),
	}}
	if _, err := ComputeSVIX(outsideTol, fe, nil, 0.02, DefaultSpotTolerance); !errors.Is(err, ErrInconsistentSpot) {
		t.Errorf("expected ErrInconsistentSpot, got %v", err)
	}

	zeroSpot := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.0, Call, 0.1, expiry, 0),
	}}
	if _, err := ComputeSVIX(zeroSpot, fe, nil, 0.02, DefaultSpotTolerance); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero spot, got %v", err)
	}
}

func TestComputeSVIX_NeverNegative(t *testing.T) {
	expiry := day(2025, 12, 24)
	for _, rate := range []float64{-0.05, 0, 0.02, 0.2} {
		for _, T := range []float64{1.0 / 365, 0.25, 2} {
			quotes := parityChain(4.0, rate, T, 3.0, 5.0, 0.1, expiry)
			g := ExpirationGroup{Expiry: expiry, T: T, Quotes: quotes}
			fe, err := EstimateForward(g, rate)
			if err != nil {
				t.Fatalf("rate %v T %v: %v", rate, T, err)
			}
			res, err := ComputeSVIX(g, fe, SelectAndWeight(g, fe.Forward), rate, DefaultSpotTolerance)
			if err != nil {
				t.Fatalf("rate %v T %v: %v", rate, T, err)
			}
			if res.SVIXPercent < 0 || math.IsNaN(res.SVIXPercent) {
				t.Errorf("rate %v T %v: SVIX %v", rate, T, res.SVIXPercent)
			}
		}
	}
}

func TestSVIXPercent_ClampsNegativeVariance(t *testing.T) {
	pct, clamped := svixPercent(-1e-4)
	if pct != 0 || !clamped {
		t.Errorf("expected 0 clamped, got %v %v", pct, clamped)
	}

	pct, clamped = svixPercent(0.04)
	if math.Abs(pct-20) > 1e-12 || clamped {
		t.Errorf("expected 20 unclamped, got %v %v", pct, clamped)
	}
}
