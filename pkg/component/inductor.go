package component

import "math"

type Inductor struct {
	Base
	Inductance float64 // henry
}

func NewInductor(id string, henry float64) *Inductor {
	return &Inductor{Base: Base{Name: id}, Inductance: henry}
}

func (l *Inductor) Kind() Type          { return TypeInductor }
func (l *Inductor) Terminals() []string { return twoTerminals() }

// Impedance is {0, 2*pi*f*L}.
func (l *Inductor) Impedance(freq float64) complex128 {
	return complex(0, 2*math.Pi*freq*l.Inductance)
}

func (l *Inductor) Clone() Component {
	c := *l
	return &c
}
