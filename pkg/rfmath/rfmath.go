// Package rfmath provides scalar complex helpers and RF conversions used
// throughout the simulator. All routines operate on complex128 and are
// total: degenerate inputs produce defined sentinel values instead of
// panics or NaN.
package rfmath

import (
	"math"
	"math/cmplx"

	"github.com/edp1096/rfsim/internal/consts"
)

// OpenCircuit is the sentinel returned for division by a zero-magnitude
// divisor. Callers doing reflection math treat it as an ideal open.
var OpenCircuit = complex(math.Inf(1), 0)

// Div divides a by b. A zero-magnitude divisor yields the open-circuit
// sentinel {+Inf, 0} rather than NaN.
func Div(a, b complex128) complex128 {
	if cmplx.Abs(b) == 0 {
		return OpenCircuit
	}
	return a / b
}

// Reciprocal returns 1/z with the same zero-divisor convention as Div.
func Reciprocal(z complex128) complex128 {
	return Div(1, z)
}

// FromPolar builds mag*cos(phase) + j*mag*sin(phase), phase in radians.
func FromPolar(mag, phase float64) complex128 {
	return complex(mag*math.Cos(phase), mag*math.Sin(phase))
}

// IsZero reports whether |z| is within tol of zero.
func IsZero(z complex128, tol float64) bool {
	return cmplx.Abs(z) <= tol
}

// IsInf reports whether either part of z is infinite.
func IsInf(z complex128) bool {
	return math.IsInf(real(z), 0) || math.IsInf(imag(z), 0)
}

// IsNaN reports whether either part of z is NaN.
func IsNaN(z complex128) bool {
	return math.IsNaN(real(z)) || math.IsNaN(imag(z))
}

// MagnitudeDB returns 20*log10(|z|) clamped to the magnitude floor so a
// perfectly matched (zero) response stays finite.
func MagnitudeDB(z complex128) float64 {
	mag := cmplx.Abs(z)
	if mag == 0 {
		return consts.MagnitudeFloor
	}
	db := 20 * math.Log10(mag)
	if db < consts.MagnitudeFloor {
		return consts.MagnitudeFloor
	}
	return db
}

// PhaseDeg returns the phase of z in degrees.
func PhaseDeg(z complex128) float64 {
	return cmplx.Phase(z) * 180.0 / math.Pi
}

// ImpedanceToGamma converts an impedance to a reflection coefficient
// referenced to z0. An infinite impedance is an ideal open, gamma = 1.
func ImpedanceToGamma(z complex128, z0 float64) complex128 {
	if IsInf(z) {
		return 1
	}
	return Div(z-complex(z0, 0), z+complex(z0, 0))
}

// GammaToImpedance converts a reflection coefficient back to an impedance
// referenced to z0. Gamma = 1 is an ideal open and yields the open sentinel.
func GammaToImpedance(gamma complex128, z0 float64) complex128 {
	return Div(complex(z0, 0)*(1+gamma), 1-gamma)
}

// VSWR computes (1+|gamma|)/(1-|gamma|). |gamma| >= 1 reports +Inf,
// never NaN.
func VSWR(gamma complex128) float64 {
	mag := cmplx.Abs(gamma)
	if mag >= 1 {
		return math.Inf(1)
	}
	return (1 + mag) / (1 - mag)
}
