package main

import "math"

// WindowPlan is the derived, immutable analysis-window geometry (§3, §4.1).
type WindowPlan struct {
	W      int // window size in samples, power of two
	H      int // hop size in samples, W/2
	Starts []int
	M      int // window count
	KMin   int // minimum steered bin index
}

// planWindows computes W, H, and the window start indices for a stream at
// the given sample rate and steering floor, per §4.1.
func planWindows(sampleRate int, fLow float64, numSamples int) (*WindowPlan, error) {
	if sampleRate <= 0 {
		return nil, newConfigError("sample rate must be positive, got %d", sampleRate)
	}
	if fLow <= 0 {
		return nil, newConfigError("-low must be > 0, got %g", fLow)
	}
	nyquist := float64(sampleRate) / 2
	if fLow >= nyquist {
		return nil, newConfigError("-low (%g Hz) must be below Nyquist (%g Hz)", fLow, nyquist)
	}

	w := smallestPowerOfTwoAtLeast(float64(sampleRate) / fLow)
	h := w / 2

	kMin := int(math.Ceil(fLow * float64(w) / float64(sampleRate)))

	var starts []int
	if numSamples >= w {
		last := ((numSamples - w) / h) * h
		for s := 0; s <= last; s += h {
			starts = append(starts, s)
		}
	} else {
		starts = []int{0}
	}

	return &WindowPlan{
		W:      w,
		H:      h,
		Starts: starts,
		M:      len(starts),
		KMin:   kMin,
	}, nil
}

func smallestPowerOfTwoAtLeast(x float64) int {
	w := 1
	for float64(w) < x {
		w <<= 1
	}
	if w < 2 {
		w = 2
	}
	return w
}
