package component

// Ground is an ideal short to the reference node.
type Ground struct {
	Base
}

func NewGround(id string) *Ground {
	return &Ground{Base: Base{Name: id}}
}

func (g *Ground) Kind() Type          { return TypeGround }
func (g *Ground) Terminals() []string { return oneTerminal() }

func (g *Ground) Impedance(freq float64) complex128 { return 0 }

func (g *Ground) Clone() Component {
	c := *g
	return &c
}
