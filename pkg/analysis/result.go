package analysis

import (
	"fmt"

	"github.com/edp1096/rfsim/pkg/rfmath"
)

// Trace is one S-parameter over the sweep: complex value plus derived
// magnitude (dB, floored) and phase (degrees) per frequency point.
type Trace struct {
	Values   []complex128
	MagDB    []float64
	PhaseDeg []float64
}

func (t *Trace) append(v complex128) {
	t.Values = append(t.Values, v)
	t.MagDB = append(t.MagDB, rfmath.MagnitudeDB(v))
	t.PhaseDeg = append(t.PhaseDeg, rfmath.PhaseDeg(v))
}

// SKey builds the map key for S(i,j), both 1-based.
func SKey(i, j int) string {
	return fmt.Sprintf("S%d%d", i, j)
}

// SweepResult is the immutable snapshot of one completed sweep. It is
// replaced wholesale on each run, never mutated in place.
type SweepResult struct {
	Config      SweepConfig
	Frequencies []float64
	PortCount   int
	PortRefs    []float64 // per-port reference impedance, port order
	S           map[string]*Trace
	Zin         []complex128 // port-1 input impedance per point
	Degenerate  int          // points solved on the degenerate path
}

func newSweepResult(cfg SweepConfig, portCount int, portRefs []float64, points int) *SweepResult {
	r := &SweepResult{
		Config:      cfg,
		Frequencies: make([]float64, 0, points),
		PortCount:   portCount,
		PortRefs:    portRefs,
		S:           make(map[string]*Trace, portCount*portCount),
		Zin:         make([]complex128, 0, points),
	}
	for i := 1; i <= portCount; i++ {
		for j := 1; j <= portCount; j++ {
			r.S[SKey(i, j)] = &Trace{
				Values:   make([]complex128, 0, points),
				MagDB:    make([]float64, 0, points),
				PhaseDeg: make([]float64, 0, points),
			}
		}
	}
	return r
}

func (r *SweepResult) add(pt *Point) {
	r.Frequencies = append(r.Frequencies, pt.Frequency)
	for i := 0; i < r.PortCount; i++ {
		for j := 0; j < r.PortCount; j++ {
			r.S[SKey(i+1, j+1)].append(pt.S.Get(i, j))
		}
	}
	r.Zin = append(r.Zin, pt.Zin)
}

// Trace returns the S(i,j) trace, both indices 1-based.
func (r *SweepResult) Trace(i, j int) (*Trace, error) {
	t, ok := r.S[SKey(i, j)]
	if !ok {
		return nil, fmt.Errorf("no trace %s in %d-port result", SKey(i, j), r.PortCount)
	}
	return t, nil
}

func (r *SweepResult) Points() int { return len(r.Frequencies) }
