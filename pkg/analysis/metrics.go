package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/rfsim/pkg/matrix"
	"github.com/edp1096/rfsim/pkg/rfmath"
)

// Minimum is the location of the lowest-magnitude point of a trace.
type Minimum struct {
	Index     int
	Frequency float64
	MagDB     float64
}

// MinimumMagnitude finds the frequency at which |S(i,j)| is lowest.
func (r *SweepResult) MinimumMagnitude(i, j int) (Minimum, error) {
	t, err := r.Trace(i, j)
	if err != nil {
		return Minimum{}, err
	}
	if len(t.MagDB) == 0 {
		return Minimum{}, fmt.Errorf("empty trace %s", SKey(i, j))
	}

	min := Minimum{Index: 0, Frequency: r.Frequencies[0], MagDB: t.MagDB[0]}
	for k := 1; k < len(t.MagDB); k++ {
		if t.MagDB[k] < min.MagDB {
			min = Minimum{Index: k, Frequency: r.Frequencies[k], MagDB: t.MagDB[k]}
		}
	}
	return min, nil
}

// Band is a bandwidth measurement around a magnitude minimum.
type Band struct {
	Low    float64 // Hz, lower crossing (clamped to sweep edge)
	High   float64 // Hz, upper crossing (clamped to sweep edge)
	Center float64 // Hz, the minimum itself
	Width  float64 // Hz
	Q      float64 // Center/Width; +Inf when Width is 0
}

// Bandwidth measures the width around the minimum of S(i,j) where the
// magnitude stays within levelDB (e.g. 3 for the -3 dB band) of the
// minimum. Crossings are linearly interpolated; edges that never cross
// clamp to the sweep boundary.
func (r *SweepResult) Bandwidth(i, j int, levelDB float64) (Band, error) {
	t, err := r.Trace(i, j)
	if err != nil {
		return Band{}, err
	}
	min, err := r.MinimumMagnitude(i, j)
	if err != nil {
		return Band{}, err
	}

	threshold := min.MagDB + levelDB
	freqs := r.Frequencies

	low := freqs[0]
	for k := min.Index; k > 0; k-- {
		if t.MagDB[k-1] > threshold {
			low = interpolateCrossing(freqs[k-1], freqs[k], t.MagDB[k-1], t.MagDB[k], threshold)
			break
		}
	}

	high := freqs[len(freqs)-1]
	for k := min.Index; k < len(freqs)-1; k++ {
		if t.MagDB[k+1] > threshold {
			high = interpolateCrossing(freqs[k], freqs[k+1], t.MagDB[k], t.MagDB[k+1], threshold)
			break
		}
	}

	band := Band{Low: low, High: high, Center: min.Frequency, Width: high - low}
	if band.Width > 0 {
		band.Q = band.Center / band.Width
	} else {
		band.Q = math.Inf(1)
	}
	return band, nil
}

func interpolateCrossing(f0, f1, db0, db1, threshold float64) float64 {
	if db1 == db0 {
		return f0
	}
	frac := (threshold - db0) / (db1 - db0)
	return f0 + frac*(f1-f0)
}

// VSWRTrace derives the voltage standing wave ratio per point from S11.
// |S11| >= 1 reports +Inf, never NaN.
func (r *SweepResult) VSWRTrace() ([]float64, error) {
	t, err := r.Trace(1, 1)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Values))
	for k, s11 := range t.Values {
		out[k] = rfmath.VSWR(s11)
	}
	return out, nil
}

// ImpedanceMatrix recovers the port impedance matrix at one sweep point
// from the S-matrix: Z = sqrt(Z0) (I+S) (I-S)^-1 sqrt(Z0), with sqrt(Z0)
// the diagonal of per-port reference roots. Returns nil when (I-S) is
// singular (an ideal open network has no finite Z-matrix).
func (r *SweepResult) ImpedanceMatrix(pointIndex int) (*matrix.ComplexMatrix, error) {
	if pointIndex < 0 || pointIndex >= r.Points() {
		return nil, fmt.Errorf("point index %d out of range [0,%d)", pointIndex, r.Points())
	}

	n := r.PortCount
	s := matrix.New(n, n)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			t := r.S[SKey(i, j)]
			s.Set(i-1, j-1, t.Values[pointIndex])
		}
	}

	eye := matrix.Identity(n)
	inv, status := eye.Sub(s).Inverse()
	if status == matrix.StatusDegenerate {
		return nil, nil
	}

	roots := matrix.New(n, n)
	for i := 0; i < n; i++ {
		roots.Set(i, i, complex(math.Sqrt(r.PortRefs[i]), 0))
	}

	return roots.Mul(eye.Add(s)).Mul(inv).Mul(roots), nil
}
