package analysis

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/edp1096/rfsim/internal/consts"
	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/component"
	"github.com/edp1096/rfsim/pkg/matrix"
	"github.com/edp1096/rfsim/pkg/rfmath"
)

func prepared(t *testing.T, ckt *circuit.Circuit) *NetworkAnalyzer {
	t.Helper()
	a := NewNetworkAnalyzer(ckt, 0, nil)
	if err := a.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return a
}

// A 100 ohm load on a 50 ohm port reflects exactly one third of the
// incident wave: S11 = (100-50)/(100+50).
func TestMismatchedLoad(t *testing.T) {
	a := prepared(t, loadCircuit(t, 100, 50))

	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if pt.Status != matrix.StatusOK {
		t.Fatalf("status = %v, want ok", pt.Status)
	}

	s11 := pt.S.Get(0, 0)
	if cmplx.Abs(s11-complex(1.0/3, 0)) > 1e-9 {
		t.Errorf("S11 = %v, want 1/3", s11)
	}
	if cmplx.Abs(pt.Zin-100) > 1e-9 {
		t.Errorf("Zin = %v, want 100", pt.Zin)
	}

	db := rfmath.MagnitudeDB(s11)
	if math.Abs(db-(-9.542)) > 1e-2 {
		t.Errorf("S11 magnitude = %v dB, want about -9.54", db)
	}
}

func TestMatchedLoad(t *testing.T) {
	a := prepared(t, loadCircuit(t, 50, 50))

	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}

	s11 := pt.S.Get(0, 0)
	if cmplx.Abs(s11) > 1e-9 {
		t.Errorf("matched S11 = %v, want 0", s11)
	}
	if rfmath.MagnitudeDB(s11) != consts.MagnitudeFloor {
		t.Errorf("matched S11 magnitude = %v dB, want floor", rfmath.MagnitudeDB(s11))
	}
	if cmplx.Abs(pt.Zin-50) > 1e-9 {
		t.Errorf("Zin = %v, want 50", pt.Zin)
	}
}

// Series 50 ohm between two 50 ohm ports: S11 = 1/3, S21 = 2/3, and the
// network is reciprocal.
func TestSeriesResistorTwoPort(t *testing.T) {
	a := prepared(t, seriesCircuit(t, 50))

	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}

	s11 := pt.S.Get(0, 0)
	s21 := pt.S.Get(1, 0)
	s12 := pt.S.Get(0, 1)
	s22 := pt.S.Get(1, 1)

	if cmplx.Abs(s11-complex(1.0/3, 0)) > 1e-9 {
		t.Errorf("S11 = %v, want 1/3", s11)
	}
	if cmplx.Abs(s21-complex(2.0/3, 0)) > 1e-9 {
		t.Errorf("S21 = %v, want 2/3", s21)
	}
	if cmplx.Abs(s21-s12) > 1e-9 {
		t.Errorf("S21 = %v, S12 = %v, want reciprocal", s21, s12)
	}
	if cmplx.Abs(s22-s11) > 1e-9 {
		t.Errorf("S22 = %v, S11 = %v, want symmetric", s22, s11)
	}

	// Port 1 looks into 50 series + 50 termination.
	if cmplx.Abs(pt.Zin-100) > 1e-9 {
		t.Errorf("Zin = %v, want 100", pt.Zin)
	}
}

// A quarter-wave 100 ohm line inverts impedance: a 200 ohm load appears
// as 100^2/200 = 50 ohm and the port is matched.
func TestQuarterWaveTransformer(t *testing.T) {
	ckt := circuit.New("qw")
	ckt.AddComponent(component.NewPort("P1", 1, 50))
	ckt.AddComponent(component.NewLine("TL1", 100, 0.05, 2e8, 0))
	ckt.AddComponent(component.NewResistor("R1", 200))
	ckt.AddComponent(component.NewGround("G1"))
	ckt.AddWire(circuit.NewWire("w1",
		circuit.Attach("P1", component.TerminalPin), circuit.Attach("TL1", component.TerminalStart)))
	ckt.AddWire(circuit.NewWire("w2",
		circuit.Attach("TL1", component.TerminalEnd), circuit.Attach("R1", component.TerminalStart)))
	ckt.AddWire(circuit.NewWire("w3",
		circuit.Attach("R1", component.TerminalEnd), circuit.Attach("G1", component.TerminalPin)))

	a := prepared(t, ckt)

	// Quarter wave at 1 GHz for v=2e8, length 0.05 m.
	pt, err := a.SolvePoint(1e9)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if cmplx.Abs(pt.S.Get(0, 0)) > 1e-6 {
		t.Errorf("S11 = %v, want matched", pt.S.Get(0, 0))
	}
	if cmplx.Abs(pt.Zin-50) > 1e-6 {
		t.Errorf("Zin = %v, want 50", pt.Zin)
	}
}

// lineLoadCircuit chains port 1 (50 ohm), a two-port line, and a
// resistive load to ground.
func lineLoadCircuit(t *testing.T, line component.Component, ohms float64) *circuit.Circuit {
	t.Helper()
	ckt := circuit.New("lineload")
	ckt.AddComponent(component.NewPort("P1", 1, 50))
	ckt.AddComponent(line)
	ckt.AddComponent(component.NewResistor("R1", ohms))
	ckt.AddComponent(component.NewGround("G1"))
	ckt.AddWire(circuit.NewWire("w1",
		circuit.Attach("P1", component.TerminalPin), circuit.Attach(line.ID(), component.TerminalStart)))
	ckt.AddWire(circuit.NewWire("w2",
		circuit.Attach(line.ID(), component.TerminalEnd), circuit.Attach("R1", component.TerminalStart)))
	ckt.AddWire(circuit.NewWire("w3",
		circuit.Attach("R1", component.TerminalEnd), circuit.Attach("G1", component.TerminalPin)))
	return ckt
}

// A zero-length line is an exact through. The load must appear at the
// port untouched, to solver precision, not through a huge-conductance
// approximation.
func TestZeroLengthLineTransparent(t *testing.T) {
	matched := prepared(t, lineLoadCircuit(t, component.NewLine("TL1", 50, 0, 2e8, 0), 50))
	pt, err := matched.SolvePoint(1e9)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if pt.Status != matrix.StatusOK {
		t.Fatalf("status = %v, want ok", pt.Status)
	}
	if got := cmplx.Abs(pt.S.Get(0, 0)); got > 1e-9 {
		t.Errorf("matched |S11| = %v, want < 1e-9", got)
	}
	if cmplx.Abs(pt.Zin-50) > 1e-9 {
		t.Errorf("matched Zin = %v, want 50", pt.Zin)
	}

	mismatched := prepared(t, lineLoadCircuit(t, component.NewLine("TL2", 50, 0, 2e8, 0), 100))
	pt, err = mismatched.SolvePoint(1e9)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if s11 := pt.S.Get(0, 0); cmplx.Abs(s11-complex(1.0/3, 0)) > 1e-9 {
		t.Errorf("S11 = %v, want 1/3", s11)
	}
	if cmplx.Abs(pt.Zin-100) > 1e-9 {
		t.Errorf("Zin = %v, want 100", pt.Zin)
	}
}

// At its half-wave frequency a line repeats the load impedance no
// matter its own characteristic impedance. B is tiny but finite there,
// the worst case for any formulation that divides by it.
func TestHalfWaveLineRepeatsLoad(t *testing.T) {
	// v=2e8, f=1e9: wavelength 0.2 m, half wave 0.1 m.
	line := component.NewLine("TL1", 75, 0.1, 2e8, 0)
	a := prepared(t, lineLoadCircuit(t, line, 100))

	pt, err := a.SolvePoint(1e9)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if s11 := pt.S.Get(0, 0); cmplx.Abs(s11-complex(1.0/3, 0)) > 1e-6 {
		t.Errorf("S11 = %v, want 1/3", s11)
	}
	if cmplx.Abs(pt.Zin-100) > 1e-4 {
		t.Errorf("Zin = %v, want repeated load 100", pt.Zin)
	}
}

// An RLGC line given only series parameters, the r/l-only netlist case,
// must solve to a finite series impedance. NaN comparisons are always
// false, so the finiteness check comes first.
func TestSeriesRLGCLineSolvesFinite(t *testing.T) {
	line := component.NewRLGCLine("TL1", 1, 250e-9, 0, 0, 0.1)
	a := prepared(t, lineLoadCircuit(t, line, 50))

	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if pt.Status != matrix.StatusOK {
		t.Fatalf("status = %v, want ok", pt.Status)
	}

	s11 := pt.S.Get(0, 0)
	if rfmath.IsNaN(s11) || rfmath.IsNaN(pt.Zin) {
		t.Fatalf("S11 = %v, Zin = %v, want finite", s11, pt.Zin)
	}

	// Total series impedance 0.1 + j*2*pi*1e6*25e-9 ahead of the 50 ohm load.
	wantZin := complex(50.1, 2*math.Pi*1e6*25e-9)
	if cmplx.Abs(pt.Zin-wantZin) > 1e-6 {
		t.Errorf("Zin = %v, want %v", pt.Zin, wantZin)
	}
}

// A port wired straight to ground has no live node: full reflection
// into a short.
func TestShortedPort(t *testing.T) {
	ckt := circuit.New("short")
	ckt.AddComponent(component.NewPort("P1", 1, 50))
	ckt.AddComponent(component.NewGround("G1"))
	ckt.AddWire(circuit.NewWire("w1",
		circuit.Attach("P1", component.TerminalPin), circuit.Attach("G1", component.TerminalPin)))

	a := prepared(t, ckt)
	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if got := pt.S.Get(0, 0); got != -1 {
		t.Errorf("shorted S11 = %v, want -1", got)
	}
	if pt.Zin != 0 {
		t.Errorf("shorted Zin = %v, want 0", pt.Zin)
	}
}

func TestIdealOpenBranchIgnored(t *testing.T) {
	// A zero-value capacitor is an ideal open; it must not corrupt the
	// admittance system next to the resistive load.
	ckt := loadCircuit(t, 100, 50)
	ckt.AddComponent(component.NewCapacitor("C1", 0))
	ckt.AddWire(circuit.NewWire("w3",
		circuit.Attach("C1", component.TerminalStart), circuit.Attach("P1", component.TerminalPin)))
	ckt.AddWire(circuit.NewWire("w4",
		circuit.Attach("C1", component.TerminalEnd), circuit.Attach("G1", component.TerminalPin)))

	a := prepared(t, ckt)
	pt, err := a.SolvePoint(1e6)
	if err != nil {
		t.Fatalf("SolvePoint: %v", err)
	}
	if cmplx.Abs(pt.S.Get(0, 0)-complex(1.0/3, 0)) > 1e-9 {
		t.Errorf("S11 = %v, want 1/3 with the open branch ignored", pt.S.Get(0, 0))
	}
}

func TestPerPortReferences(t *testing.T) {
	ckt := circuit.New("refs")
	ckt.AddComponent(component.NewPort("P1", 1, 75))
	ckt.AddComponent(component.NewPort("P2", 2, 0)) // falls back to global
	ckt.AddComponent(component.NewGround("G1"))

	a := prepared(t, ckt)
	refs := a.PortReferences()
	if refs[0] != 75 {
		t.Errorf("port 1 reference = %v, want its own 75", refs[0])
	}
	if refs[1] != consts.DefaultZ0 {
		t.Errorf("port 2 reference = %v, want fallback %v", refs[1], consts.DefaultZ0)
	}
}

func TestSolvePointRequiresPrepare(t *testing.T) {
	a := NewNetworkAnalyzer(loadCircuit(t, 100, 50), 0, nil)
	if _, err := a.SolvePoint(1e6); err == nil {
		t.Error("SolvePoint before Prepare should fail")
	}
	if a.PortCount() != 0 {
		t.Errorf("unprepared PortCount = %d, want 0", a.PortCount())
	}
	if refs := a.PortReferences(); refs != nil {
		t.Errorf("unprepared PortReferences = %v, want nil", refs)
	}
}
