package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/rfsim/internal/consts"
	"github.com/edp1096/rfsim/internal/logging"
	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/component"
	"github.com/edp1096/rfsim/pkg/matrix"
	"github.com/edp1096/rfsim/pkg/rfmath"
)

// shortAdmittance stamps in place of an exact zero impedance (an ideal
// short would otherwise produce an infinite admittance).
const shortAdmittance = 1e12

// NetworkAnalyzer computes the multi-port S-matrix and port input
// impedance of one circuit. The circuit is always passed in explicitly;
// the analyzer and its matrices are transient and rebuilt per analysis.
type NetworkAnalyzer struct {
	ckt  *circuit.Circuit
	z0   float64 // global fallback reference impedance
	log  logging.Logger
	topo *topology
}

// NewNetworkAnalyzer builds an analyzer over ckt. z0 is the fallback
// reference impedance for ports without their own; pass 0 for the
// default.
func NewNetworkAnalyzer(ckt *circuit.Circuit, z0 float64, log logging.Logger) *NetworkAnalyzer {
	if z0 <= 0 {
		z0 = consts.DefaultZ0
	}
	if log == nil {
		log = logging.Noop()
	}
	return &NetworkAnalyzer{ckt: ckt, z0: z0, log: log}
}

// Prepare resolves the circuit topology. Configuration problems (no
// port, no ground, duplicate port numbers) come back as errors, never
// panics.
func (a *NetworkAnalyzer) Prepare() error {
	topo, err := resolveTopology(a.ckt)
	if err != nil {
		return fmt.Errorf("topology resolution: %w", err)
	}
	a.topo = topo
	return nil
}

func (a *NetworkAnalyzer) PortCount() int {
	if a.topo == nil {
		return 0
	}
	return len(a.topo.ports)
}

// PortReferences returns each port's resolved reference impedance in
// port-number order, or nil before Prepare.
func (a *NetworkAnalyzer) PortReferences() []float64 {
	if a.topo == nil {
		return nil
	}
	refs := make([]float64, len(a.topo.ports))
	for i, p := range a.topo.ports {
		refs[i] = p.Reference(a.z0)
	}
	return refs
}

// Point is the full solution of one frequency point.
type Point struct {
	Frequency float64
	S         *matrix.ComplexMatrix // PxP, S[i][j] response at i from excitation at j
	Zin       complex128            // input impedance at port 1
	Status    matrix.SolveStatus
}

// SolvePoint assembles the nodal admittance system at freq and extracts
// the S-matrix by exciting one port at a time, each port normalized to
// its own reference impedance.
func (a *NetworkAnalyzer) SolvePoint(freq float64) (*Point, error) {
	if a.topo == nil {
		return nil, fmt.Errorf("analyzer not prepared")
	}

	n := a.topo.nodeCount
	ports := a.topo.ports
	refs := a.PortReferences()

	if n == 0 {
		// Every terminal is pinned to ground: full reflection into a
		// short at all ports.
		s := matrix.New(len(ports), len(ports))
		for i := range ports {
			s.Set(i, i, -1)
		}
		return &Point{Frequency: freq, S: s, Zin: 0, Status: matrix.StatusOK}, nil
	}

	size := a.topo.systemSize()
	y := a.stampAdmittance(freq, size)

	// Port terminations: every port loads its node with 1/Zref. The
	// excitation below is the Norton equivalent of a unit incident wave
	// behind that same termination.
	for i := range ports {
		if node := a.topo.portNode[i]; node > 0 {
			y.AddAt(node-1, node-1, complex(1/refs[i], 0))
		}
	}

	solve, status, cleanup := a.newSolver(y, freq)
	defer cleanup()

	s := matrix.New(len(ports), len(ports))
	var zin complex128 = rfmath.OpenCircuit

	for j := range ports {
		rhs := make([]complex128, size)
		nodeJ := a.topo.portNode[j]
		vs := 2 * math.Sqrt(refs[j])
		if nodeJ > 0 {
			rhs[nodeJ-1] = complex(vs/refs[j], 0) // Norton source 2/sqrt(Zref)
		}

		x, st := solve(rhs)
		if st == matrix.StatusDegenerate {
			status = matrix.StatusDegenerate
		}

		for i := range ports {
			var vi complex128
			if node := a.topo.portNode[i]; node > 0 {
				vi = x[node-1]
			}
			sij := vi / complex(math.Sqrt(refs[i]), 0)
			if i == j {
				sij -= 1
			}
			s.Set(i, j, sij)
		}

		if j == 0 {
			var v1 complex128
			if nodeJ > 0 {
				v1 = x[nodeJ-1]
			}
			zin = rfmath.Div(v1*complex(refs[0], 0), complex(vs, 0)-v1)
		}
	}

	return &Point{Frequency: freq, S: s, Zin: zin, Status: status}, nil
}

// stampAdmittance builds the modified nodal system matrix at freq: node
// voltage rows first, then the branch-equation rows of each two-port.
func (a *NetworkAnalyzer) stampAdmittance(freq float64, size int) *matrix.ComplexMatrix {
	y := matrix.New(size, size)

	for _, comp := range a.ckt.Components() {
		switch comp.Kind() {
		case component.TypePort, component.TypeGround, component.TypeIntegrated:
			continue
		}

		nodes := a.topo.nodes(comp)
		if len(nodes) != 2 {
			continue
		}
		n1, n2 := nodes[0], nodes[1]

		if tp, ok := comp.(component.TwoPort); ok {
			b1 := a.topo.nodeCount + 2*a.topo.branchOf[comp.ID()]
			a.stampTwoPort(y, tp.ABCD(freq), comp.ID(), n1, n2, b1, b1+1)
			continue
		}

		z := comp.Impedance(freq)
		if rfmath.IsInf(z) {
			continue // ideal open contributes nothing
		}
		adm := rfmath.Reciprocal(z)
		if rfmath.IsInf(adm) {
			adm = complex(shortAdmittance, 0)
		}
		stampBranch(y, n1, n2, adm)
	}

	return y
}

// stampTwoPort writes the element's ABCD relation as a pair of branch
// equations with explicit branch currents, I1 into the start node and
// I2 out of the end node:
//
//	V1 - A*V2 - B*I2 = 0
//	I1 - C*V2 - D*I2 = 0
//
// A Y-parameter conversion would divide by B, which cancels
// catastrophically for near-ideal throughs (zero-length or half-wave
// lines). The branch form stays exact for any finite ABCD, including
// B = 0.
func (a *NetworkAnalyzer) stampTwoPort(y *matrix.ComplexMatrix, p component.ABCDParams, id string, n1, n2, b1, b2 int) {
	if !finiteABCD(p) {
		// An empty branch row marks the system degenerate through the
		// solve status instead of letting NaN or Inf into the matrix.
		a.log.Warn("two-port has no finite transmission matrix, left unstamped",
			logging.String("component", id))
		return
	}

	if n1 > 0 {
		y.AddAt(n1-1, b1, 1)
		y.AddAt(b1, n1-1, 1)
	}
	if n2 > 0 {
		y.AddAt(n2-1, b2, -1)
		y.AddAt(b1, n2-1, -p.A)
		y.AddAt(b2, n2-1, -p.C)
	}
	y.AddAt(b1, b2, -p.B)
	y.AddAt(b2, b1, 1)
	y.AddAt(b2, b2, -p.D)
}

func finiteABCD(p component.ABCDParams) bool {
	for _, v := range [...]complex128{p.A, p.B, p.C, p.D} {
		if rfmath.IsNaN(v) || rfmath.IsInf(v) {
			return false
		}
	}
	return true
}

// stampBranch applies standard nodal stamping rules for a scalar
// admittance between nodes n1 and n2 (0 = ground).
func stampBranch(y *matrix.ComplexMatrix, n1, n2 int, adm complex128) {
	if n1 > 0 {
		y.AddAt(n1-1, n1-1, adm)
		if n2 > 0 {
			y.AddAt(n1-1, n2-1, -adm)
		}
	}
	if n2 > 0 {
		y.AddAt(n2-1, n2-1, adm)
		if n1 > 0 {
			y.AddAt(n2-1, n1-1, -adm)
		}
	}
}

// newSolver factors the system once and returns a per-RHS solve
// closure. The sparse LU path is primary; a singular factorization
// falls back to the dense best-effort elimination so a degenerate
// network still yields a definite result instead of aborting the sweep.
func (a *NetworkAnalyzer) newSolver(y *matrix.ComplexMatrix, freq float64) (func([]complex128) ([]complex128, matrix.SolveStatus), matrix.SolveStatus, func()) {
	n := y.Rows()
	cleanup := func() {}

	cm, err := matrix.NewCircuitMatrix(n)
	if err == nil {
		cleanup = cm.Destroy
		if err = cm.Load(y); err == nil {
			err = cm.Factor()
		}
	}
	if err == nil {
		return func(rhs []complex128) ([]complex128, matrix.SolveStatus) {
			x, serr := cm.SolveComplex(rhs)
			if serr != nil {
				a.log.Warn("sparse solve failed, using dense fallback",
					logging.Float("freq", freq), logging.Any("err", serr))
				return matrix.Solve(y, rhs)
			}
			return x, matrix.StatusOK
		}, matrix.StatusOK, cleanup
	}

	a.log.Warn("singular admittance system, using dense fallback",
		logging.Float("freq", freq), logging.Any("err", err))
	return func(rhs []complex128) ([]complex128, matrix.SolveStatus) {
		return matrix.Solve(y, rhs)
	}, matrix.StatusDegenerate, cleanup
}
