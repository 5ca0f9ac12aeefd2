package main

import "math"

// Gains holds the dimensionless, complex per-destination-channel steering
// weight a matrix computes for one bin (§4.3). These are what the Temporal
// Averager smooths — never the basis signal itself (§4.4).
type Gains struct {
	FL, FR, C, RL, RR complex128
}

// Basis holds the per-channel complex signal a Gains value multiplies to
// produce a destination bin (§4.3: "the destination bin is g_c · (L_k +
// R_k)/√2 for center ... and g_c · L_k or g_c · R_k for side-preserving
// channels"). It is recomputed fresh for every window from that window's
// own (L_k, R_k) — only the gain is shared across neighboring windows by
// the averager.
type Basis struct {
	FL, FR, C, RL, RR complex128
}

const sqrtHalf = 0.7071067811865476 // 1/sqrt(2)

// standardBasis is the basis every matrix except dolby uses: front/rear on
// a side share that side's raw bin, center is the usual sum basis.
func standardBasis(lk, rk complex128) Basis {
	c := (lk + rk) * complex(sqrtHalf, 0)
	return Basis{FL: lk, FR: rk, C: c, RL: lk, RR: rk}
}

// clamp01 restricts x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// steeringBasics derives pan and phi from a bin pair (§4.3). ampFloor is
// config.MinAmp: bins whose combined L+R magnitude falls below it get pan
// forced to 0 (near-silence guarding against noise-driven flicker that the
// Temporal Averager further damps); phi is still computed for them.
func steeringBasics(lk, rk complex128, ampFloor float64) (pan, phi float64) {
	const eps = 1e-12

	magL := cmplxAbs(lk)
	magR := cmplxAbs(rk)
	ampSum := magL + magR

	if ampSum < ampFloor {
		pan = 0
	} else {
		pan = (magR - magL) / math.Max(ampSum, eps)
	}

	phi = cmplxPhase(rk) - cmplxPhase(lk)
	phi = normalizeAngle(phi)

	return pan, phi
}

func cmplxAbs(z complex128) float64 {
	re, im := real(z), imag(z)
	return math.Hypot(re, im)
}

func cmplxPhase(z complex128) float64 {
	return math.Atan2(imag(z), real(z))
}

// normalizeAngle folds an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// frontBackPosition is b ∈ [0,1] from |phi|/pi, clamped (§4.3 default
// matrix rule; reused by horseshoe/dolby/qs).
func frontBackPosition(phi float64) float64 {
	return clamp01(math.Abs(phi) / math.Pi)
}
