// Package netlist reads the circuit description produced by the editor:
// component records, wire records and an optional sweep block, as JSON.
package netlist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Value is a float64 that unmarshals from a JSON number or from a string
// with a SPICE magnitude suffix ("1k", "10meg", "2.2u").
type Value float64

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"M":   1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?$`)

// ParseValue parses a magnitude with optional suffix. "1k" -> 1000.
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}
	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}
	return num, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := ParseValue(s)
		if err != nil {
			return err
		}
		*v = Value(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// Document is the top-level circuit file.
type Document struct {
	Name       string            `json:"name"`
	Sweep      *SweepBlock       `json:"sweep,omitempty"`
	Components []ComponentRecord `json:"components"`
	Wires      []WireRecord      `json:"wires"`
}

// SweepBlock is the sweep configuration carried alongside the topology.
type SweepBlock struct {
	Start  Value  `json:"start"`
	Stop   Value  `json:"stop"`
	Points int    `json:"points"`
	Scale  string `json:"scale"` // "linear" or "log"
	Z0     Value  `json:"z0"`
}

// ComponentRecord is one editor component. Params is type-specific.
// Integrated groupings additionally carry the referenced subset and the
// input/ground anchors.
type ComponentRecord struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Rotation float64          `json:"rotation"`
	Params   map[string]Value `json:"params,omitempty"`

	Components []string      `json:"components,omitempty"`
	WireIDs    []string      `json:"wireIds,omitempty"`
	Input      *AnchorRecord `json:"input,omitempty"`
	Ground     *AnchorRecord `json:"ground,omitempty"`
}

// Param returns the named parameter or def when absent.
func (r ComponentRecord) Param(name string, def float64) float64 {
	if v, ok := r.Params[name]; ok {
		return float64(v)
	}
	return def
}

// HasParam reports whether the record carries the named parameter.
func (r ComponentRecord) HasParam(name string) bool {
	_, ok := r.Params[name]
	return ok
}

// AnchorRecord designates a component terminal or a wire.
type AnchorRecord struct {
	Component string `json:"component,omitempty"`
	Terminal  string `json:"terminal,omitempty"`
	Wire      string `json:"wire,omitempty"`
}

// EndpointRecord is one wire end: attached when Component is set, free
// at (X, Y) otherwise.
type EndpointRecord struct {
	Component string  `json:"component,omitempty"`
	Terminal  string  `json:"terminal,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
}

type WireRecord struct {
	ID    string         `json:"id"`
	Start EndpointRecord `json:"start"`
	End   EndpointRecord `json:"end"`
}

// Parse decodes a circuit document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing circuit file: %w", err)
	}
	return &doc, nil
}
