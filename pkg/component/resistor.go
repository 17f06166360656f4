package component

type Resistor struct {
	Base
	Resistance float64 // ohm
}

func NewResistor(id string, ohms float64) *Resistor {
	return &Resistor{Base: Base{Name: id}, Resistance: ohms}
}

func (r *Resistor) Kind() Type          { return TypeResistor }
func (r *Resistor) Terminals() []string { return twoTerminals() }

// Impedance is frequency-independent: {R, 0}.
func (r *Resistor) Impedance(freq float64) complex128 {
	return complex(r.Resistance, 0)
}

func (r *Resistor) Clone() Component {
	c := *r
	return &c
}
