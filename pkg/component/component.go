package component

import "fmt"

// Type is the closed set of component kinds. Dispatch is by exhaustive
// switch so a new kind is a compile-visible concern.
type Type int

const (
	TypeResistor Type = iota
	TypeInductor
	TypeCapacitor
	TypeTransmissionLine
	TypeImpedance
	TypePort
	TypeGround
	TypeIntegrated
)

func (t Type) String() string {
	switch t {
	case TypeResistor:
		return "resistor"
	case TypeInductor:
		return "inductor"
	case TypeCapacitor:
		return "capacitor"
	case TypeTransmissionLine:
		return "tline"
	case TypeImpedance:
		return "impedance"
	case TypePort:
		return "port"
	case TypeGround:
		return "ground"
	case TypeIntegrated:
		return "integrated"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps the editor's type tag to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "resistor":
		return TypeResistor, nil
	case "inductor":
		return TypeInductor, nil
	case "capacitor":
		return TypeCapacitor, nil
	case "tline", "transmission_line":
		return TypeTransmissionLine, nil
	case "impedance":
		return TypeImpedance, nil
	case "port":
		return TypePort, nil
	case "ground":
		return TypeGround, nil
	case "integrated":
		return TypeIntegrated, nil
	}
	return 0, fmt.Errorf("unknown component type %q", s)
}

// Terminal names. Two-terminal parts expose start/end, single-terminal
// parts (port, ground) expose pin.
const (
	TerminalStart = "start"
	TerminalEnd   = "end"
	TerminalPin   = "pin"
)

// Component is one circuit element. Impedance is the scalar one-port
// characterization at the given frequency in Hz.
type Component interface {
	ID() string
	Kind() Type
	Terminals() []string
	Impedance(freq float64) complex128
	Clone() Component
}

// ABCDParams is the 2x2 transmission (cascade) matrix of a two-port.
type ABCDParams struct {
	A, B, C, D complex128
}

// TwoPort is implemented by distributed elements that are modeled by an
// ABCD matrix instead of a scalar series impedance.
type TwoPort interface {
	Component
	ABCD(freq float64) ABCDParams
}

// Base carries the identity shared by every component.
type Base struct {
	Name string
}

func (b *Base) ID() string { return b.Name }

func twoTerminals() []string { return []string{TerminalStart, TerminalEnd} }
func oneTerminal() []string  { return []string{TerminalPin} }
