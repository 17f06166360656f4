package export

import (
	"fmt"
	"io"

	"github.com/edp1096/rfsim/pkg/analysis"
)

// CSV writes magnitude/phase columns for every S-parameter, one row per
// frequency point, 4-decimal fixed formatting.
func CSV(w io.Writer, r *analysis.SweepResult) error {
	n := r.PortCount
	if n < 1 {
		return fmt.Errorf("no ports in result")
	}

	if _, err := io.WriteString(w, "Frequency (Hz)"); err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			key := analysis.SKey(i, j)
			if _, err := fmt.Fprintf(w, ",%s Mag (dB),%s Phase (deg)", key, key); err != nil {
				return err
			}
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for k, freq := range r.Frequencies {
		if _, err := fmt.Fprintf(w, "%.4f", freq); err != nil {
			return err
		}
		for i := 1; i <= n; i++ {
			for j := 1; j <= n; j++ {
				t := r.S[analysis.SKey(i, j)]
				if _, err := fmt.Fprintf(w, ",%.4f,%.4f", t.MagDB[k], t.PhaseDeg[k]); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
