package component

// Port marks an external connection point. PortNumber is 1-based and
// unique per circuit. Zref is the port's own reference impedance; zero
// means "use the circuit's global Z0 fallback".
type Port struct {
	Base
	PortNumber int
	Zref       float64 // ohm, 0 = unset
}

func NewPort(id string, number int, zref float64) *Port {
	return &Port{Base: Base{Name: id}, PortNumber: number, Zref: zref}
}

func (p *Port) Kind() Type          { return TypePort }
func (p *Port) Terminals() []string { return oneTerminal() }

// Reference resolves the port's reference impedance against the global
// fallback.
func (p *Port) Reference(fallback float64) float64 {
	if p.Zref > 0 {
		return p.Zref
	}
	return fallback
}

func (p *Port) Impedance(freq float64) complex128 {
	return complex(p.Zref, 0)
}

func (p *Port) Clone() Component {
	c := *p
	return &c
}
