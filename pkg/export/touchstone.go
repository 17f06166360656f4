// Package export serializes sweep results for external tools.
package export

import (
	"fmt"
	"io"

	"github.com/edp1096/rfsim/pkg/analysis"
)

// Touchstone writes the full S-matrix in .sNp format: comment header,
// "# Hz S RI R z0" option line, one row per frequency. The 2-port case
// uses the standard S11 S21 S12 S22 column order expected by common
// readers; other port counts are row-major.
func Touchstone(w io.Writer, r *analysis.SweepResult) error {
	n := r.PortCount
	if n < 1 {
		return fmt.Errorf("no ports in result")
	}

	if _, err := fmt.Fprintf(w, "! %d-port S-parameter data, %d points\n", n, r.Points()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# Hz S RI R %g\n", r.Config.Z0); err != nil {
		return err
	}

	order := touchstoneOrder(n)
	for k, freq := range r.Frequencies {
		if _, err := fmt.Fprintf(w, "%.12g", freq); err != nil {
			return err
		}
		for _, key := range order {
			v := r.S[key].Values[k]
			if _, err := fmt.Fprintf(w, " %.12g %.12g", real(v), imag(v)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func touchstoneOrder(n int) []string {
	if n == 2 {
		return []string{analysis.SKey(1, 1), analysis.SKey(2, 1), analysis.SKey(1, 2), analysis.SKey(2, 2)}
	}
	order := make([]string, 0, n*n)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			order = append(order, analysis.SKey(i, j))
		}
	}
	return order
}
