package component

import (
	"math"
	"math/cmplx"

	"github.com/edp1096/rfsim/internal/consts"
	"github.com/edp1096/rfsim/pkg/rfmath"
)

// LineModel selects how the transmission line derives its propagation
// constant and characteristic impedance.
type LineModel int

const (
	// LineStandard: real Z0 plus loss in dB/m and a propagation velocity.
	LineStandard LineModel = iota
	// LineRLGC: per-unit-length series R, L and shunt G, C.
	LineRLGC
)

// TransmissionLine is a distributed two-port modeled by its ABCD matrix
// A=D=cosh(gamma*l), B=Zc*sinh(gamma*l), C=sinh(gamma*l)/Zc.
type TransmissionLine struct {
	Base
	Model  LineModel
	Length float64 // m

	// Standard model
	Z0       float64 // ohm
	Velocity float64 // m/s
	Loss     float64 // dB/m

	// RLGC model, per unit length
	R float64 // ohm/m
	L float64 // H/m
	G float64 // S/m
	C float64 // F/m
}

var _ TwoPort = (*TransmissionLine)(nil)

func NewLine(id string, z0, length, velocity, loss float64) *TransmissionLine {
	if velocity <= 0 {
		velocity = consts.DefaultVelocity
	}
	return &TransmissionLine{
		Base:     Base{Name: id},
		Model:    LineStandard,
		Z0:       z0,
		Length:   length,
		Velocity: velocity,
		Loss:     loss,
	}
}

func NewRLGCLine(id string, r, l, g, c, length float64) *TransmissionLine {
	return &TransmissionLine{
		Base:   Base{Name: id},
		Model:  LineRLGC,
		Length: length,
		R:      r,
		L:      l,
		G:      g,
		C:      c,
	}
}

func (t *TransmissionLine) Kind() Type          { return TypeTransmissionLine }
func (t *TransmissionLine) Terminals() []string { return twoTerminals() }

// characteristics returns gamma = alpha + j*beta and Zc at freq.
func (t *TransmissionLine) characteristics(freq float64) (gamma, zc complex128) {
	omega := 2 * math.Pi * freq

	switch t.Model {
	case LineRLGC:
		zs := complex(t.R, omega*t.L) // series impedance per meter
		yp := complex(t.G, omega*t.C) // shunt admittance per meter
		gamma = cmplx.Sqrt(zs * yp)   // principal branch
		zc = cmplx.Sqrt(rfmath.Div(zs, yp))
		return gamma, zc

	default: // LineStandard
		alpha := t.Loss * math.Ln10 / 20
		beta := omega / t.Velocity
		return complex(alpha, beta), complex(t.Z0, 0)
	}
}

// Impedance is the simplified one-port characterization: the line's
// characteristic impedance, used outside full two-port cascading.
func (t *TransmissionLine) Impedance(freq float64) complex128 {
	_, zc := t.characteristics(freq)
	return zc
}

// ABCD returns the transmission matrix of the line segment. Zero length
// degenerates to the identity two-port at any frequency.
func (t *TransmissionLine) ABCD(freq float64) ABCDParams {
	if t.Length == 0 {
		return ABCDParams{A: 1, B: 0, C: 0, D: 1}
	}

	if t.Model == LineRLGC {
		omega := 2 * math.Pi * freq
		zs := complex(t.R, omega*t.L)
		yp := complex(t.G, omega*t.C)
		// A line with no shunt (or no series) path reduces to a lumped
		// element; the cosh/sinh form degenerates to Inf*0 there.
		if cmplx.Abs(yp) == 0 {
			return ABCDParams{A: 1, B: zs * complex(t.Length, 0), C: 0, D: 1}
		}
		if cmplx.Abs(zs) == 0 {
			return ABCDParams{A: 1, B: 0, C: yp * complex(t.Length, 0), D: 1}
		}
	}

	gamma, zc := t.characteristics(freq)
	gl := gamma * complex(t.Length, 0)

	coshGL := cmplx.Cosh(gl)
	sinhGL := cmplx.Sinh(gl)

	return ABCDParams{
		A: coshGL,
		B: zc * sinhGL,
		C: rfmath.Div(sinhGL, zc),
		D: coshGL,
	}
}

func (t *TransmissionLine) Clone() Component {
	c := *t
	return &c
}
