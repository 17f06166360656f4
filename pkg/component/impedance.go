package component

// ImpedanceBlock is a fixed complex impedance literal {R, X}.
type ImpedanceBlock struct {
	Base
	Resistance float64 // ohm
	Reactance  float64 // ohm
}

func NewImpedanceBlock(id string, r, x float64) *ImpedanceBlock {
	return &ImpedanceBlock{Base: Base{Name: id}, Resistance: r, Reactance: x}
}

func (z *ImpedanceBlock) Kind() Type          { return TypeImpedance }
func (z *ImpedanceBlock) Terminals() []string { return twoTerminals() }

func (z *ImpedanceBlock) Impedance(freq float64) complex128 {
	return complex(z.Resistance, z.Reactance)
}

func (z *ImpedanceBlock) Clone() Component {
	c := *z
	return &c
}
