package main

import "math"

// qsMatrix reproduces the mild, conservative widening of the QS/Regular
// Matrix 4-channel decoders (§4.3 "qs", alias "rm"): a smaller widening
// factor than horseshoe and no hard wrap threshold, so the image shifts
// continuously rather than snapping past a knee. In-phase, centered
// material already lands mostly in the shared center basis under the
// standard C = (L_k+R_k)/sqrt(2) formula, which is where qs's traditional
// "center bias" shows up acoustically without needing a second, separately
// normalized center term.
type qsMatrix struct{}

func (qsMatrix) Name() string { return "qs" }

const (
	qsWidenAlpha = 1.1
	qsWrapGain   = 0.15
)

func (qsMatrix) Steer(lk, rk complex128, pan, phi float64) (Gains, Basis) {
	b := frontBackPosition(phi)
	baseAngle := b * math.Pi / 2

	widenedPan := math.Copysign(math.Min(math.Abs(pan)*qsWidenAlpha, 1), pan)

	angleL := baseAngle
	angleR := baseAngle
	if widenedPan < 0 {
		angleL = clampAngle(baseAngle + (-widenedPan)*qsWrapGain*(math.Pi/2))
	} else if widenedPan > 0 {
		angleR = clampAngle(baseAngle + widenedPan*qsWrapGain*(math.Pi/2))
	}

	return angleGains(angleL, angleR, 1), standardBasis(lk, rk)
}
