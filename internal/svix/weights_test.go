package svix

import (
	"math"
	"testing"
)

func TestSelectAndWeight_Partition(t *testing.T) {
	expiry := day(2025, 9, 24)
	forward := 4.0
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(3.8, Put, 0.02, expiry, 4.0),
		quote(3.8, Call, 0.22, expiry, 4.0),
		quote(4.0, Put, 0.06, expiry, 4.0),
		quote(4.0, Call, 0.06, expiry, 4.0),
		quote(4.2, Put, 0.21, expiry, 4.0),
		quote(4.2, Call, 0.01, expiry, 4.0),
	}}

	otm := SelectAndWeight(g, forward)

	if len(otm) != 3 {
		t.Fatalf("expected 3 OTM options, got %d: %+v", len(otm), otm)
	}
	seen := make(map[OptionType]map[float64]bool)
	for _, o := range otm {
		switch o.Type {
		case Put:
			if o.Strike >= forward {
				t.Errorf("put at %v retained with forward %v", o.Strike, forward)
			}
		case Call:
			if o.Strike < forward {
				t.Errorf("call at %v retained with forward %v", o.Strike, forward)
			}
		}
		if seen[o.Type] == nil {
			seen[o.Type] = make(map[float64]bool)
		}
		if seen[o.Type][o.Strike] {
			t.Errorf("%s at %v retained twice", o.Type, o.Strike)
		}
		seen[o.Type][o.Strike] = true
	}

	// a strike exactly at the forward belongs to the call side
	if otm[1].Strike != 4.0 || otm[1].Type != Call {
		t.Errorf("expected call at the forward strike, got %+v", otm[1])
	}
}

func TestSelectAndWeight_Intervals(t *testing.T) {
	expiry := day(2025, 9, 24)
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.5, Call, 0.01, expiry, 3.9),
		quote(3.7, Put, 0.03, expiry, 3.9),
		quote(4.0, Call, 0.05, expiry, 3.9),
		quote(3.5, Put, 0.01, expiry, 3.9),
		quote(3.8, Put, 0.06, expiry, 3.9),
	}}

	otm := SelectAndWeight(g, 3.9)

	wantStrikes := []float64{3.5, 3.7, 3.8, 4.0, 4.5}
	wantDK := []float64{0.2, 0.15, 0.15, 0.35, 0.5}
	if len(otm) != len(wantStrikes) {
		t.Fatalf("expected %d options, got %d", len(wantStrikes), len(otm))
	}
	for i, o := range otm {
		if o.Strike != wantStrikes[i] {
			t.Errorf("position %d: expected strike %v, got %v", i, wantStrikes[i], o.Strike)
		}
		if math.Abs(o.DeltaK-wantDK[i]) > 1e-12 {
			t.Errorf("strike %v: expected dK %v, got %v", o.Strike, wantDK[i], o.DeltaK)
		}
		if o.DeltaK < 0 {
			t.Errorf("strike %v: negative dK %v", o.Strike, o.DeltaK)
		}
	}

	// interior midpoints plus half of each boundary interval telescope to the span
	n := len(otm)
	sum := otm[0].DeltaK/2 + otm[n-1].DeltaK/2
	for _, o := range otm[1 : n-1] {
		sum += o.DeltaK
	}
	if span := otm[n-1].Strike - otm[0].Strike; math.Abs(sum-span) > 1e-12 {
		t.Errorf("expected interval sum %v, got %v", span, sum)
	}
}

func TestSelectAndWeight_TwoStrikesUseBoundaryRule(t *testing.T) {
	expiry := day(2025, 8, 27)
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.0, Put, 0.05, expiry, 4.28),
		quote(4.2, Call, 0.03, expiry, 4.28),
	}}

	otm := SelectAndWeight(g, 4.04)

	if len(otm) != 2 {
		t.Fatalf("expected 2 options, got %d", len(otm))
	}
	for _, o := range otm {
		if math.Abs(o.DeltaK-0.2) > 1e-12 {
			t.Errorf("strike %v: expected dK 0.2, got %v", o.Strike, o.DeltaK)
		}
	}
}

func TestSelectAndWeight_Degenerate(t *testing.T) {
	expiry := day(2025, 8, 27)

	empty := SelectAndWeight(ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.2, Put, 0.20, expiry, 4.0),
	}}, 4.0)
	if len(empty) != 0 {
		t.Errorf("expected no OTM options, got %+v", empty)
	}

	single := SelectAndWeight(ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(4.2, Call, 0.02, expiry, 4.0),
	}}, 4.0)
	if len(single) != 1 || single[0].DeltaK != 0 {
		t.Errorf("expected a single option with dK 0, got %+v", single)
	}
}

func TestSelectAndWeight_DuplicateStrikesKeptDistinct(t *testing.T) {
	// Duplicated grid entries are not merged; both copies carry an interval.
	expiry := day(2025, 8, 27)
	g := ExpirationGroup{Expiry: expiry, T: 0.1, Quotes: []Quote{
		quote(3.8, Put, 0.02, expiry, 4.0),
		quote(4.2, Call, 0.03, expiry, 4.0),
		quote(4.2, Call, 0.03, expiry, 4.0),
		quote(4.4, Call, 0.01, expiry, 4.0),
	}}

	otm := SelectAndWeight(g, 4.0)

	if len(otm) != 4 {
		t.Fatalf("expected duplicate calls to be kept, got %d options", len(otm))
	}
	if otm[1].Strike != 4.2 || otm[2].Strike != 4.2 {
		t.Fatalf("expected duplicates adjacent at 4.2, got %+v", otm)
	}
	if math.Abs(otm[1].DeltaK-0.2) > 1e-12 || math.Abs(otm[2].DeltaK-0.1) > 1e-12 {
		t.Errorf("unexpected intervals for duplicates: %v, %v", otm[1].DeltaK, otm[2].DeltaK)
	}
}
