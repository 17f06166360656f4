package circuit

import (
	"fmt"

	"github.com/edp1096/rfsim/pkg/component"
)

// Endpoint is one end of a wire: attached to a component terminal, or
// free at a spatial point. Free endpoints sharing coordinates form an
// implicit junction.
type Endpoint struct {
	Component string
	Terminal  string
	X, Y      float64
}

func (e Endpoint) Attached() bool { return e.Component != "" }

func Attach(componentID, terminal string) Endpoint {
	return Endpoint{Component: componentID, Terminal: terminal}
}

func Free(x, y float64) Endpoint {
	return Endpoint{X: x, Y: y}
}

// Wire is an undirected zero-impedance connection between two endpoints.
type Wire struct {
	Name string
	Ends [2]Endpoint
}

func NewWire(id string, a, b Endpoint) *Wire {
	return &Wire{Name: id, Ends: [2]Endpoint{a, b}}
}

// Circuit owns the component and wire collections. Iteration follows
// insertion order so repeated analyses are bit-identical. Structural
// mutations bump a revision counter consumed by sub-circuit caches.
type Circuit struct {
	name       string
	components map[string]component.Component
	order      []string
	wires      map[string]*Wire
	wireOrder  []string
	revision   uint64
}

func New(name string) *Circuit {
	return &Circuit{
		name:       name,
		components: make(map[string]component.Component),
		wires:      make(map[string]*Wire),
	}
}

func (c *Circuit) Name() string { return c.name }

// Revision increments on every structural mutation.
func (c *Circuit) Revision() uint64 { return c.revision }

func (c *Circuit) AddComponent(comp component.Component) error {
	id := comp.ID()
	if id == "" {
		return fmt.Errorf("component has empty id")
	}
	if _, exists := c.components[id]; exists {
		return fmt.Errorf("duplicate component id %q", id)
	}
	c.components[id] = comp
	c.order = append(c.order, id)
	c.revision++
	return nil
}

func (c *Circuit) RemoveComponent(id string) bool {
	if _, exists := c.components[id]; !exists {
		return false
	}
	delete(c.components, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.revision++
	return true
}

func (c *Circuit) Component(id string) (component.Component, bool) {
	comp, ok := c.components[id]
	return comp, ok
}

// Components returns all components in insertion order.
func (c *Circuit) Components() []component.Component {
	out := make([]component.Component, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.components[id])
	}
	return out
}

func (c *Circuit) AddWire(w *Wire) error {
	if w.Name == "" {
		return fmt.Errorf("wire has empty id")
	}
	if _, exists := c.wires[w.Name]; exists {
		return fmt.Errorf("duplicate wire id %q", w.Name)
	}
	c.wires[w.Name] = w
	c.wireOrder = append(c.wireOrder, w.Name)
	c.revision++
	return nil
}

func (c *Circuit) RemoveWire(id string) bool {
	if _, exists := c.wires[id]; !exists {
		return false
	}
	delete(c.wires, id)
	for i, v := range c.wireOrder {
		if v == id {
			c.wireOrder = append(c.wireOrder[:i], c.wireOrder[i+1:]...)
			break
		}
	}
	c.revision++
	return true
}

func (c *Circuit) Wire(id string) (*Wire, bool) {
	w, ok := c.wires[id]
	return w, ok
}

// Wires returns all wires in insertion order.
func (c *Circuit) Wires() []*Wire {
	out := make([]*Wire, 0, len(c.wireOrder))
	for _, id := range c.wireOrder {
		out = append(out, c.wires[id])
	}
	return out
}

// Ports returns the circuit's ports in insertion order.
func (c *Circuit) Ports() []*component.Port {
	var ports []*component.Port
	for _, comp := range c.Components() {
		if p, ok := comp.(*component.Port); ok {
			ports = append(ports, p)
		}
	}
	return ports
}
