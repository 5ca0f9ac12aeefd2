package main

// averagingRadius is A in §4.4: each window's steering gain is smoothed
// against its A neighbors on either side. The exact radius is a tuning
// parameter derived from listening tests rather than a fixed rule; 2
// windows at 50% hop is a full window's worth of lookahead/lookback in
// each direction (five windows in all), enough to damp single-window bin
// flicker without smearing a fast pan across more than a handful of hops.
const averagingRadius = 2

// averageGains smooths the steering gain at window m, bin k across
// [m-A, m+A], truncated at file boundaries (§4.4: "causal-symmetric,
// truncated at the edges — never wraps around"). Only the gain is
// averaged; the basis supplied at synthesis time always comes from the
// window's own spectrum, so a smoothed decision is still applied to that
// window's true signal.
func averageGains(steered [][]SteeredBin, m, k int) Gains {
	lo := m - averagingRadius
	if lo < 0 {
		lo = 0
	}
	hi := m + averagingRadius
	if hi > len(steered)-1 {
		hi = len(steered) - 1
	}

	var sum Gains
	n := 0
	for i := lo; i <= hi; i++ {
		g := steered[i][k].Gains
		sum.FL += g.FL
		sum.FR += g.FR
		sum.C += g.C
		sum.RL += g.RL
		sum.RR += g.RR
		n++
	}

	inv := complex(1/float64(n), 0)
	return Gains{
		FL: sum.FL * inv,
		FR: sum.FR * inv,
		C:  sum.C * inv,
		RL: sum.RL * inv,
		RR: sum.RR * inv,
	}
}
