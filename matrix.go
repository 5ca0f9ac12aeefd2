package main

import "math"

// Matrix is a pure per-bin steering strategy (§4.3): given a bin pair and
// its derived pan/phi, it returns the complex gain for each destination
// channel plus the basis signal each gain multiplies. Implementations never
// hold state or touch neighboring bins/windows — that's the Temporal
// Averager's job (§4.4).
type Matrix interface {
	Name() string
	Steer(lk, rk complex128, pan, phi float64) (Gains, Basis)
}

// matrixByKind resolves a MatrixKind to its Matrix implementation.
func matrixByKind(k MatrixKind) Matrix {
	switch k {
	case MatrixHorseshoe:
		return horseshoeMatrix{}
	case MatrixDolby:
		return dolbyMatrix{}
	case MatrixQS:
		return qsMatrix{}
	case MatrixSQ:
		return sqMatrix{}
	default:
		return defaultMatrix{}
	}
}

// angleGains turns a pair of per-side split angles (each in [0, pi/2]) and
// a center weight into a Gains value over the standard basis. cos/sin of a
// single angle keeps each (front,rear) pair's squared-gain sum exactly 1,
// which is how every angle-based matrix here satisfies the energy
// conservation contract (§8) without a separate normalization pass.
func angleGains(angleL, angleR, centerWeight float64) Gains {
	return Gains{
		FL: complex(math.Cos(angleL), 0),
		RL: complex(math.Sin(angleL), 0),
		FR: complex(math.Cos(angleR), 0),
		RR: complex(math.Sin(angleR), 0),
		C:  complex(centerWeight, 0),
	}
}

func clampAngle(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > math.Pi/2 {
		return math.Pi / 2
	}
	return a
}
