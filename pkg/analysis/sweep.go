package analysis

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/edp1096/rfsim/internal/consts"
	"github.com/edp1096/rfsim/internal/logging"
	"github.com/edp1096/rfsim/pkg/circuit"
	"github.com/edp1096/rfsim/pkg/matrix"
)

// SweepScale selects the frequency grid; it is an explicit configuration
// choice, never inferred.
type SweepScale string

const (
	ScaleLinear SweepScale = "linear"
	ScaleLog    SweepScale = "log"
)

// SweepConfig describes one frequency sweep.
type SweepConfig struct {
	Start  float64    // Hz
	Stop   float64    // Hz
	Points int
	Scale  SweepScale
	Z0     float64 // global fallback reference impedance; 0 = derive
}

// Frequencies generates the sweep grid for cfg.
func Frequencies(cfg SweepConfig) []float64 {
	freqs := make([]float64, cfg.Points)
	if cfg.Points == 1 {
		freqs[0] = cfg.Start
		return freqs
	}

	switch cfg.Scale {
	case ScaleLog:
		logStart := math.Log10(cfg.Start)
		logStop := math.Log10(cfg.Stop)
		step := (logStop - logStart) / float64(cfg.Points-1)
		for i := range freqs {
			freqs[i] = math.Pow(10, logStart+float64(i)*step)
		}
	default: // linear
		step := (cfg.Stop - cfg.Start) / float64(cfg.Points-1)
		for i := range freqs {
			freqs[i] = cfg.Start + float64(i)*step
		}
	}
	return freqs
}

func (cfg SweepConfig) validate() error {
	if cfg.Points < 1 {
		return fmt.Errorf("sweep needs at least 1 point, got %d", cfg.Points)
	}
	if cfg.Start <= 0 {
		return fmt.Errorf("start frequency must be positive, got %g", cfg.Start)
	}
	if cfg.Points > 1 && cfg.Stop < cfg.Start {
		return fmt.Errorf("stop frequency %g below start %g", cfg.Stop, cfg.Start)
	}
	return nil
}

// Calculator orchestrates sweeps. One sweep runs at a time; a second Run
// while one is in flight fails immediately instead of queuing. The loop
// yields the scheduler at bounded intervals so a host event loop is not
// starved, and checks ctx at the same points for cooperative
// cancellation.
type Calculator struct {
	log     logging.Logger
	running atomic.Bool
	results atomic.Pointer[SweepResult]
}

func NewCalculator(log logging.Logger) *Calculator {
	if log == nil {
		log = logging.Noop()
	}
	return &Calculator{log: log}
}

// Results returns the snapshot of the last completed sweep, or nil.
func (c *Calculator) Results() *SweepResult {
	return c.results.Load()
}

// Run sweeps ckt over cfg's frequency grid. progress may be nil. On any
// failure no partial results replace the previous snapshot.
func (c *Calculator) Run(ctx context.Context, ckt *circuit.Circuit, cfg SweepConfig, progress func(done, total int)) (*SweepResult, error) {
	if !c.running.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("sweep already running")
	}
	defer c.running.Store(false)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("sweep config: %w", err)
	}

	if cfg.Z0 <= 0 {
		cfg.Z0 = fallbackZ0(ckt)
	}

	analyzer := NewNetworkAnalyzer(ckt, cfg.Z0, c.log)
	if err := analyzer.Prepare(); err != nil {
		return nil, fmt.Errorf("sweep aborted: %w", err)
	}

	freqs := Frequencies(cfg)
	total := len(freqs)
	stride := (total + 99) / 100

	result := newSweepResult(cfg, analyzer.PortCount(), analyzer.PortReferences(), total)

	for i, freq := range freqs {
		pt, err := analyzer.SolvePoint(freq)
		if err != nil {
			return nil, fmt.Errorf("sweep failed at %g Hz: %w", freq, err)
		}
		if pt.Status == matrix.StatusDegenerate {
			result.Degenerate++
		}
		result.add(pt)

		if (i+1)%stride == 0 || i+1 == total {
			if progress != nil {
				progress(i+1, total)
			}
			if ctx != nil {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("sweep canceled at %g Hz: %w", freq, err)
				}
			}
			runtime.Gosched()
		}
	}

	c.results.Store(result)
	return result, nil
}

// fallbackZ0 derives the global reference impedance from the first port
// that carries one.
func fallbackZ0(ckt *circuit.Circuit) float64 {
	for _, p := range ckt.Ports() {
		if p.Zref > 0 {
			return p.Zref
		}
	}
	return consts.DefaultZ0
}
