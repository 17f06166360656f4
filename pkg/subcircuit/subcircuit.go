// Package subcircuit virtualizes a grouped subset of a live circuit so
// its input impedance can be queried as if it were a standalone one-port.
package subcircuit

import (
	"fmt"

	"github.com/edp1096/rfsim/internal/logging"
	"github.com/edp1096/rfsim/pkg/analysis"
	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/component"
	"github.com/edp1096/rfsim/pkg/rfmath"
)

// Anchor designates where the synthetic port or ground attaches: a
// component terminal, or a wire. An ideal wire is a single electrical
// node, so a wire reference resolves to either of its endpoints.
type Anchor struct {
	Component string
	Terminal  string
	Wire      string
}

func (a Anchor) empty() bool { return a.Component == "" && a.Wire == "" }

// Integrated is a visual/topological grouping of live-circuit parts.
// It exposes no terminals of its own; its Impedance is the port-1 input
// impedance of an isolated clone of the referenced subset.
//
// Caching is lazy: the isolated model is rebuilt on the next Impedance
// call after the live circuit's revision moves (or after an explicit
// Invalidate), never eagerly on mutation.
type Integrated struct {
	component.Base
	live         *circuit.Circuit
	componentIDs []string
	wireIDs      []string
	input        Anchor
	ground       Anchor
	log          logging.Logger

	cached    *analysis.NetworkAnalyzer
	cachedRev uint64
	dirty     bool
}

var _ component.Component = (*Integrated)(nil)

func New(id string, live *circuit.Circuit, componentIDs, wireIDs []string, input, ground Anchor, log logging.Logger) *Integrated {
	if log == nil {
		log = logging.Noop()
	}
	return &Integrated{
		Base:         component.Base{Name: id},
		live:         live,
		componentIDs: componentIDs,
		wireIDs:      wireIDs,
		input:        input,
		ground:       ground,
		log:          log,
		dirty:        true,
	}
}

func (s *Integrated) Kind() component.Type { return component.TypeIntegrated }
func (s *Integrated) Terminals() []string  { return nil }

// Invalidate marks the cached model stale; the next Impedance call
// rebuilds it.
func (s *Integrated) Invalidate() { s.dirty = true }

// Impedance analyzes the isolated clone at freq and returns its input
// impedance. Unresolvable groupings degrade to an ideal open rather
// than failing.
func (s *Integrated) Impedance(freq float64) complex128 {
	analyzer, err := s.model()
	if err != nil {
		s.log.Warn("sub-circuit model unavailable",
			logging.String("id", s.ID()), logging.Any("err", err))
		return rfmath.OpenCircuit
	}

	pt, err := analyzer.SolvePoint(freq)
	if err != nil {
		s.log.Warn("sub-circuit solve failed",
			logging.String("id", s.ID()), logging.Any("err", err))
		return rfmath.OpenCircuit
	}
	return pt.Zin
}

func (s *Integrated) Clone() component.Component {
	c := *s
	c.cached = nil
	c.dirty = true
	return &c
}

// model returns the cached analyzer, rebuilding when stale.
func (s *Integrated) model() (*analysis.NetworkAnalyzer, error) {
	if s.cached != nil && !s.dirty && s.cachedRev == s.live.Revision() {
		return s.cached, nil
	}

	analyzer, err := s.build()
	if err != nil {
		return nil, err
	}
	s.cached = analyzer
	s.cachedRev = s.live.Revision()
	s.dirty = false
	return analyzer, nil
}

// build clones the referenced subset plus a synthetic port/ground pair
// into a fresh circuit and prepares an analyzer over it. Ids are
// preserved so anchor references resolve against the clone set. Stale
// references are skipped, and an unresolvable anchor simply omits its
// synthetic element.
func (s *Integrated) build() (*analysis.NetworkAnalyzer, error) {
	iso := circuit.New(s.ID() + ".model")

	for _, id := range s.componentIDs {
		comp, ok := s.live.Component(id)
		if !ok {
			s.log.Warn("sub-circuit references missing component",
				logging.String("id", s.ID()), logging.String("component", id))
			continue
		}
		if err := iso.AddComponent(comp.Clone()); err != nil {
			return nil, fmt.Errorf("cloning component %s: %w", id, err)
		}
	}
	for _, id := range s.wireIDs {
		w, ok := s.live.Wire(id)
		if !ok {
			s.log.Warn("sub-circuit references missing wire",
				logging.String("id", s.ID()), logging.String("wire", id))
			continue
		}
		clone := *w
		if err := iso.AddWire(&clone); err != nil {
			return nil, fmt.Errorf("cloning wire %s: %w", id, err)
		}
	}

	if end, ok := s.resolveAnchor(iso, s.input); ok {
		port := component.NewPort(s.ID()+".port", 1, 0)
		if err := iso.AddComponent(port); err != nil {
			return nil, err
		}
		wire := circuit.NewWire(s.ID()+".portwire", circuit.Attach(port.ID(), component.TerminalPin), end)
		if err := iso.AddWire(wire); err != nil {
			return nil, err
		}
	}
	if end, ok := s.resolveAnchor(iso, s.ground); ok {
		gnd := component.NewGround(s.ID() + ".gnd")
		if err := iso.AddComponent(gnd); err != nil {
			return nil, err
		}
		wire := circuit.NewWire(s.ID()+".gndwire", circuit.Attach(gnd.ID(), component.TerminalPin), end)
		if err := iso.AddWire(wire); err != nil {
			return nil, err
		}
	}

	analyzer := analysis.NewNetworkAnalyzer(iso, 0, s.log)
	if err := analyzer.Prepare(); err != nil {
		return nil, fmt.Errorf("isolated model: %w", err)
	}
	return analyzer, nil
}

// resolveAnchor maps an anchor to a wire endpoint inside the clone set.
func (s *Integrated) resolveAnchor(iso *circuit.Circuit, a Anchor) (circuit.Endpoint, bool) {
	if a.empty() {
		return circuit.Endpoint{}, false
	}
	if a.Component != "" {
		if _, ok := iso.Component(a.Component); ok {
			return circuit.Attach(a.Component, a.Terminal), true
		}
		s.log.Warn("anchor component not in sub-circuit",
			logging.String("id", s.ID()), logging.String("component", a.Component))
		return circuit.Endpoint{}, false
	}
	if w, ok := iso.Wire(a.Wire); ok {
		// Any point of an ideal wire is the same node; use its first end.
		return w.Ends[0], true
	}
	s.log.Warn("anchor wire not in sub-circuit",
		logging.String("id", s.ID()), logging.String("wire", a.Wire))
	return circuit.Endpoint{}, false
}
