package component

import (
	"math"

	"github.com/edp1096/rfsim/pkg/rfmath"
)

type Capacitor struct {
	Base
	Capacitance float64 // farad
}

func NewCapacitor(id string, farad float64) *Capacitor {
	return &Capacitor{Base: Base{Name: id}, Capacitance: farad}
}

func (c *Capacitor) Kind() Type          { return TypeCapacitor }
func (c *Capacitor) Terminals() []string { return twoTerminals() }

// Impedance is {0, -1/(2*pi*f*C)}. At DC or zero capacitance the part is
// an ideal open and yields the open-circuit sentinel.
func (c *Capacitor) Impedance(freq float64) complex128 {
	omega := 2 * math.Pi * freq
	if omega*c.Capacitance == 0 {
		return rfmath.OpenCircuit
	}
	return complex(0, -1/(omega*c.Capacitance))
}

func (c *Capacitor) Clone() Component {
	cc := *c
	return &cc
}
