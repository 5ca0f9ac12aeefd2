package main

import "math"

// dolbyMatrix is the legacy Dolby Surround (LtRt-style) decode rule
// (§4.3 "dolby"): front channels track L_k/R_k directly, and the
// out-of-phase difference (L_k - R_k)/sqrt(2) feeds both rear channels
// identically, phase-shifted 90 degrees as real Dolby Surround decoders
// do to keep the passive matrix stable under mono fold-down.
type dolbyMatrix struct{}

func (dolbyMatrix) Name() string { return "dolby" }

var dolbyRearRotation = complex(0, 1) // +90 degrees

func (dolbyMatrix) Steer(lk, rk complex128, pan, phi float64) (Gains, Basis) {
	b := frontBackPosition(phi)
	frontWeight := math.Cos(b * math.Pi / 2)
	rearWeight := math.Sin(b * math.Pi / 2)

	gains := Gains{
		FL: complex(frontWeight, 0),
		FR: complex(frontWeight, 0),
		RL: complex(rearWeight, 0),
		RR: complex(rearWeight, 0),
		C:  complex(1, 0),
	}

	rearBasis := (lk - rk) * complex(sqrtHalf, 0) * dolbyRearRotation
	basis := Basis{
		FL: lk,
		FR: rk,
		C:  (lk + rk) * complex(sqrtHalf, 0),
		RL: rearBasis,
		RR: rearBasis,
	}

	return gains, basis
}
