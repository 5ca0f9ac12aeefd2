package main

import "math"

// hannWindow returns a length-n Hann window, used for both analysis and
// synthesis (§3, §4.1). The product of the two windows does not sum to a
// constant at 50% hop, so synthesis divides by the accumulated squared
// window instead (see normalizeChannel).
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
