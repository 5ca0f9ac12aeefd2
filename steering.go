package main

// SteeredBin is the per-bin, per-window steering decision: the gain vector
// from the matrix (not yet temporally averaged) and the basis it applies
// to (§4.3, §4.4).
type SteeredBin struct {
	Gains Gains
	Basis Basis
}

// steerWindow runs the Steering Stage for one window (§4.3): every bin at
// or above kMin is steered through the configured matrix; bins below kMin
// pass straight through to FL/FR only, per the steering floor contract —
// low frequencies carry too little phase information per window to steer
// reliably, so they're left untouched rather than risk false imaging.
func steerWindow(w *Window, kMin int, ampFloor float64, m Matrix) []SteeredBin {
	bins := make([]SteeredBin, len(w.SL))
	nyquist := len(bins) - 1
	for k := range bins {
		lk, rk := w.SL[k], w.SR[k]
		if k < kMin {
			bins[k] = SteeredBin{
				Gains: Gains{FL: 1, FR: 1},
				Basis: Basis{FL: lk, FR: rk},
			}
			continue
		}
		pan, phi := steeringBasics(lk, rk, ampFloor)
		if k == 0 || k == nyquist {
			// DC and Nyquist are pure real; phase is fixed at 0 rather
			// than letting atan2 read a sign flip as "out of phase" (§4.2).
			phi = 0
		}
		gains, basis := m.Steer(lk, rk, pan, phi)
		bins[k] = SteeredBin{Gains: gains, Basis: basis}
	}
	return bins
}
