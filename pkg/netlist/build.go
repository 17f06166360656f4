package netlist

import (
	"fmt"

	"github.com/edp1096/rfsim/internal/logging"
	"github.com/edp1096/rfsim/pkg/analysis"
	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/component"
	"github.com/edp1096/rfsim/pkg/subcircuit"
)

// Build materializes a parsed document into a circuit. Integrated
// groupings are created last so they can reference the live circuit.
func Build(doc *Document, log logging.Logger) (*circuit.Circuit, error) {
	if log == nil {
		log = logging.Noop()
	}
	ckt := circuit.New(doc.Name)

	var integrated []ComponentRecord
	for _, rec := range doc.Components {
		kind, err := component.ParseType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", rec.ID, err)
		}
		if kind == component.TypeIntegrated {
			integrated = append(integrated, rec)
			continue
		}

		comp, err := createComponent(kind, rec)
		if err != nil {
			return nil, err
		}
		if err := ckt.AddComponent(comp); err != nil {
			return nil, err
		}
	}

	for _, rec := range doc.Wires {
		w := circuit.NewWire(rec.ID, endpoint(rec.Start), endpoint(rec.End))
		if err := ckt.AddWire(w); err != nil {
			return nil, err
		}
	}

	for _, rec := range integrated {
		comp := subcircuit.New(rec.ID, ckt, rec.Components, rec.WireIDs,
			anchor(rec.Input), anchor(rec.Ground), log)
		if err := ckt.AddComponent(comp); err != nil {
			return nil, err
		}
	}

	return ckt, nil
}

// createComponent dispatches over the closed type set.
func createComponent(kind component.Type, rec ComponentRecord) (component.Component, error) {
	switch kind {
	case component.TypeResistor:
		return component.NewResistor(rec.ID, rec.Param("resistance", 0)), nil

	case component.TypeInductor:
		return component.NewInductor(rec.ID, rec.Param("inductance", 0)), nil

	case component.TypeCapacitor:
		return component.NewCapacitor(rec.ID, rec.Param("capacitance", 0)), nil

	case component.TypeImpedance:
		return component.NewImpedanceBlock(rec.ID,
			rec.Param("resistance", 0), rec.Param("reactance", 0)), nil

	case component.TypeTransmissionLine:
		// Presence of any per-unit-length parameter selects RLGC.
		if rec.HasParam("r") || rec.HasParam("l") || rec.HasParam("g") || rec.HasParam("c") {
			return component.NewRLGCLine(rec.ID,
				rec.Param("r", 0), rec.Param("l", 0),
				rec.Param("g", 0), rec.Param("c", 0),
				rec.Param("length", 0)), nil
		}
		return component.NewLine(rec.ID,
			rec.Param("z0", 50), rec.Param("length", 0),
			rec.Param("velocity", 0), rec.Param("loss", 0)), nil

	case component.TypePort:
		number := int(rec.Param("portNumber", 1))
		return component.NewPort(rec.ID, number, rec.Param("impedance", 0)), nil

	case component.TypeGround:
		return component.NewGround(rec.ID), nil

	case component.TypeIntegrated:
		return nil, fmt.Errorf("component %s: integrated groupings are built last", rec.ID)
	}
	return nil, fmt.Errorf("component %s: unhandled type %v", rec.ID, kind)
}

func endpoint(rec EndpointRecord) circuit.Endpoint {
	if rec.Component != "" {
		return circuit.Attach(rec.Component, rec.Terminal)
	}
	return circuit.Free(rec.X, rec.Y)
}

func anchor(rec *AnchorRecord) subcircuit.Anchor {
	if rec == nil {
		return subcircuit.Anchor{}
	}
	return subcircuit.Anchor{Component: rec.Component, Terminal: rec.Terminal, Wire: rec.Wire}
}

// SweepConfig resolves the document's sweep block with defaults.
func SweepConfig(doc *Document) analysis.SweepConfig {
	cfg := analysis.SweepConfig{
		Start:  1e6,
		Stop:   1e9,
		Points: 101,
		Scale:  analysis.ScaleLinear,
	}
	if doc.Sweep == nil {
		return cfg
	}

	if doc.Sweep.Start > 0 {
		cfg.Start = float64(doc.Sweep.Start)
	}
	if doc.Sweep.Stop > 0 {
		cfg.Stop = float64(doc.Sweep.Stop)
	}
	if doc.Sweep.Points > 0 {
		cfg.Points = doc.Sweep.Points
	}
	if doc.Sweep.Scale == string(analysis.ScaleLog) {
		cfg.Scale = analysis.ScaleLog
	}
	cfg.Z0 = float64(doc.Sweep.Z0)
	return cfg
}
