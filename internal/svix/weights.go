package svix

import "sort"

// SelectAndWeight keeps the out-of-the-money side of the chain around the
// forward (puts below F, calls at or above F), orders it by strike and
// assigns each strike its integration interval:
//
//	interior  dK_i = (K_{i+1} - K_{i-1}) / 2
//	first     dK_1 = K_2 - K_1
//	last      dK_n = K_n - K_{n-1}
//
// A single surviving strike gets dK = 0.
func SelectAndWeight(g ExpirationGroup, forward float64) []WeightedOption {
	otm := make([]WeightedOption, 0, len(g.Quotes))
	for _, q := range g.Quotes {
		if (q.Type == Put && q.Strike < forward) || (q.Type == Call && q.Strike >= forward) {
			otm = append(otm, WeightedOption{Strike: q.Strike, Type: q.Type, Price: q.Price})
		}
	}

	sort.SliceStable(otm, func(i, j int) bool {
		if otm[i].Strike != otm[j].Strike {
			return otm[i].Strike < otm[j].Strike
		}
		return otm[i].Type == Put && otm[j].Type == Call
	})

	n := len(otm)
	if n < 2 {
		return otm
	}
	otm[0].DeltaK = otm[1].Strike - otm[0].Strike
	otm[n-1].DeltaK = otm[n-1].Strike - otm[n-2].Strike
	for i := 1; i < n-1; i++ {
		otm[i].DeltaK = (otm[i+1].Strike - otm[i-1].Strike) / 2
	}
	return otm
}
