package main

import "math"

// horseshoeMatrix widens hard-panned content and wraps it toward the rear
// speaker on that side (§4.3 "horseshoe"), approximating the classic
// horseshoe-shaped surround image: a signal panned hard right keeps bleeding
// into RR as it gets more extreme, rather than staying pinned to FR.
type horseshoeMatrix struct{}

func (horseshoeMatrix) Name() string { return "horseshoe" }

const (
	horseshoeWidenAlpha = 1.25
	horseshoeWrapTau    = 0.8
)

func (horseshoeMatrix) Steer(lk, rk complex128, pan, phi float64) (Gains, Basis) {
	b := frontBackPosition(phi)
	baseAngle := b * math.Pi / 2

	widenedPan := math.Copysign(math.Min(math.Abs(pan)*horseshoeWidenAlpha, 1), pan)

	angleL := baseAngle
	angleR := baseAngle
	if widenedPan < -horseshoeWrapTau {
		frac := (math.Abs(widenedPan) - horseshoeWrapTau) / (1 - horseshoeWrapTau)
		angleL = clampAngle(baseAngle + frac*(math.Pi/2-baseAngle))
	} else if widenedPan > horseshoeWrapTau {
		frac := (widenedPan - horseshoeWrapTau) / (1 - horseshoeWrapTau)
		angleR = clampAngle(baseAngle + frac*(math.Pi/2-baseAngle))
	}

	return angleGains(angleL, angleR, 1), standardBasis(lk, rk)
}
