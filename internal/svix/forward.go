package svix

import (
	"fmt"
	"math"
	"sort"
)

type strikePair struct {
	callSum, putSum float64
	calls, puts     int
}

// EstimateForward derives the forward price from put-call parity at the
// strike where call and put prices are closest. Ties go to the smallest
// strike. Duplicate quotes for the same strike and type are averaged.
func EstimateForward(g ExpirationGroup, rate float64) (ForwardEstimate, error) {
	if err := checkHorizon(g.T, rate); err != nil {
		return ForwardEstimate{}, err
	}

	pairs := make(map[float64]*strikePair)
	for _, q := range g.Quotes {
		p, ok := pairs[q.Strike]
		if !ok {
			p = &strikePair{}
			pairs[q.Strike] = p
		}
		switch q.Type {
		case Call:
			p.callSum += q.Price
			p.calls++
		case Put:
			p.putSum += q.Price
			p.puts++
		}
	}

	strikes := make([]float64, 0, len(pairs))
	for k, p := range pairs {
		if p.calls > 0 && p.puts > 0 {
			strikes = append(strikes, k)
		}
	}
	if len(strikes) == 0 {
		return ForwardEstimate{}, fmt.Errorf("%w: no strike quoted as both call and put", ErrInsufficientData)
	}
	sort.Float64s(strikes)

	pivot := strikes[0]
	call, put := pairs[pivot].mean()
	best := math.Abs(call - put)
	for _, k := range strikes[1:] {
		c, p := pairs[k].mean()
		if d := math.Abs(c - p); d < best {
			pivot, call, put, best = k, c, p, d
		}
	}

	return ForwardEstimate{
		PivotStrike: pivot,
		Forward:     pivot + math.Exp(rate*g.T)*(call-put),
	}, nil
}

func (p *strikePair) mean() (call, put float64) {
	return p.callSum / float64(p.calls), p.putSum / float64(p.puts)
}

func checkHorizon(t, rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: risk-free rate %v is not finite", ErrInvalidInput, rate)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("%w: time to expiry %v must be finite and positive", ErrInvalidInput, t)
	}
	return nil
}
