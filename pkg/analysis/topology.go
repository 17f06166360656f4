package analysis

import (
	"fmt"
	"sort"

	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/component"
)

// Electrical nodes are derived, not stored: terminals joined by wires
// (or by free wire endpoints meeting at the same spatial point) merge
// into one node, and Ground components pin their node to reference
// node 0. Node 0 is ground; live nodes are numbered from 1.

type terminalRef struct {
	comp string
	term string
}

type topology struct {
	nodeCount int                 // live (non-ground) nodes
	nodeOf    map[terminalRef]int // node per terminal
	branches  int                 // ABCD two-ports, two branch unknowns each
	branchOf  map[string]int      // two-port component id -> branch pair index
	ports     []*component.Port   // sorted by port number
	portNode  []int               // node per port, parallel to ports
}

// systemSize is the unknown count of the modified nodal system: node
// voltages first, then two branch currents per ABCD two-port.
func (t *topology) systemSize() int { return t.nodeCount + 2*t.branches }

const groundKey = "!ground"

// unionFind over string keys: "comp\x00term" for terminals,
// "pt\x00x,y" for free wire endpoints.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(k string) string {
	p, ok := u.parent[k]
	if !ok {
		u.parent[k] = k
		return k
	}
	if p == k {
		return k
	}
	root := u.find(p)
	u.parent[k] = root
	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func terminalKey(comp, term string) string {
	return comp + "\x00" + term
}

func endpointKey(e circuit.Endpoint) string {
	if e.Attached() {
		return terminalKey(e.Component, e.Terminal)
	}
	return fmt.Sprintf("pt\x00%g,%g", e.X, e.Y)
}

// resolveTopology merges terminals into nodes and validates that the
// circuit has at least one port and a ground reference.
func resolveTopology(ckt *circuit.Circuit) (*topology, error) {
	uf := newUnionFind()

	for _, w := range ckt.Wires() {
		uf.union(endpointKey(w.Ends[0]), endpointKey(w.Ends[1]))
	}

	var ports []*component.Port
	groundSeen := false
	for _, comp := range ckt.Components() {
		switch v := comp.(type) {
		case *component.Ground:
			groundSeen = true
			uf.union(terminalKey(v.ID(), component.TerminalPin), groundKey)
		case *component.Port:
			ports = append(ports, v)
		}
		// Seed every terminal so unwired ones still get a node.
		for _, term := range comp.Terminals() {
			uf.find(terminalKey(comp.ID(), term))
		}
	}

	if len(ports) == 0 {
		return nil, fmt.Errorf("circuit has no port")
	}
	if !groundSeen {
		return nil, fmt.Errorf("circuit has no ground reference")
	}

	seen := make(map[int]bool, len(ports))
	for _, p := range ports {
		if p.PortNumber < 1 {
			return nil, fmt.Errorf("port %s has invalid number %d", p.ID(), p.PortNumber)
		}
		if seen[p.PortNumber] {
			return nil, fmt.Errorf("duplicate port number %d", p.PortNumber)
		}
		seen[p.PortNumber] = true
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].PortNumber < ports[j].PortNumber })

	// Assign node indices in deterministic component order.
	groundRoot := uf.find(groundKey)
	nodeIndex := map[string]int{groundRoot: 0}
	next := 1
	topo := &topology{nodeOf: make(map[terminalRef]int)}

	for _, comp := range ckt.Components() {
		for _, term := range comp.Terminals() {
			root := uf.find(terminalKey(comp.ID(), term))
			idx, ok := nodeIndex[root]
			if !ok {
				idx = next
				nodeIndex[root] = idx
				next++
			}
			topo.nodeOf[terminalRef{comp.ID(), term}] = idx
		}
	}

	topo.nodeCount = next - 1

	// ABCD two-ports carry their port currents as explicit unknowns.
	topo.branchOf = make(map[string]int)
	for _, comp := range ckt.Components() {
		if _, ok := comp.(component.TwoPort); ok {
			topo.branchOf[comp.ID()] = topo.branches
			topo.branches++
		}
	}

	topo.ports = ports
	topo.portNode = make([]int, len(ports))
	for i, p := range ports {
		topo.portNode[i] = topo.nodeOf[terminalRef{p.ID(), component.TerminalPin}]
	}

	return topo, nil
}

func (t *topology) nodes(comp component.Component) []int {
	terms := comp.Terminals()
	out := make([]int, len(terms))
	for i, term := range terms {
		out[i] = t.nodeOf[terminalRef{comp.ID(), term}]
	}
	return out
}
