package matrix

import (
	"fmt"
	"math/cmplx"

	"github.com/edp1096/rfsim/internal/consts"
)

// SolveStatus reports how an elimination finished. Degenerate results are
// a data condition (ill-conditioned admittance systems from open/short
// limiting cases), not an error.
type SolveStatus int

const (
	StatusOK SolveStatus = iota
	StatusDegenerate
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegenerate:
		return "degenerate"
	}
	return fmt.Sprintf("SolveStatus(%d)", int(s))
}

// Solve solves Ax=b by Gauss-Jordan elimination on the augmented [A|b]
// with partial pivoting by complex magnitude. A pivot below the singular
// threshold marks the solution degenerate and skips that column, so the
// caller still gets a best-effort vector instead of an abort.
func Solve(a *ComplexMatrix, b []complex128) ([]complex128, SolveStatus) {
	if a.rows != a.cols {
		panic(fmt.Sprintf("matrix: solve requires square matrix, got %dx%d", a.rows, a.cols))
	}
	if len(b) != a.rows {
		panic(fmt.Sprintf("matrix: rhs length %d does not match %dx%d system", len(b), a.rows, a.cols))
	}

	n := a.rows
	aug := New(n, n+1)
	for i := 0; i < n; i++ {
		copy(aug.data[i*(n+1):i*(n+1)+n], a.data[i*n:(i+1)*n])
		aug.data[i*(n+1)+n] = b[i]
	}

	status := eliminate(aug, n)

	x := make([]complex128, n)
	for i := 0; i < n; i++ {
		x[i] = aug.data[i*(n+1)+n]
	}
	return x, status
}

// Inverse returns the inverse of a square matrix via pivoted Gauss-Jordan
// on [A|I]. Unlike Solve there is no useful partial inverse, so a singular
// pivot aborts and returns (nil, StatusDegenerate).
func (m *ComplexMatrix) Inverse() (*ComplexMatrix, SolveStatus) {
	if m.rows != m.cols {
		panic(fmt.Sprintf("matrix: inverse requires square matrix, got %dx%d", m.rows, m.cols))
	}

	n := m.rows
	aug := New(n, 2*n)
	for i := 0; i < n; i++ {
		copy(aug.data[i*2*n:i*2*n+n], m.data[i*n:(i+1)*n])
		aug.data[i*2*n+n+i] = 1
	}

	if eliminate(aug, n) == StatusDegenerate {
		return nil, StatusDegenerate
	}

	inv := New(n, n)
	for i := 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug.data[i*2*n+n:(i+1)*2*n])
	}
	return inv, StatusOK
}

// eliminate row-reduces the leading n columns of aug in place.
func eliminate(aug *ComplexMatrix, n int) SolveStatus {
	status := StatusOK
	width := aug.cols

	for col := 0; col < n; col++ {
		// Partial pivoting: pick the remaining row with greatest magnitude
		// in the active column.
		pivotRow := col
		pivotMag := cmplx.Abs(aug.data[col*width+col])
		for r := col + 1; r < n; r++ {
			if mag := cmplx.Abs(aug.data[r*width+col]); mag > pivotMag {
				pivotRow, pivotMag = r, mag
			}
		}
		if pivotMag < consts.PivotTolerance {
			status = StatusDegenerate
			continue
		}
		if pivotRow != col {
			swapRows(aug, pivotRow, col)
		}

		inv := 1 / aug.data[col*width+col]
		for j := col; j < width; j++ {
			aug.data[col*width+j] *= inv
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug.data[r*width+col]
			if factor == 0 {
				continue
			}
			for j := col; j < width; j++ {
				aug.data[r*width+j] -= factor * aug.data[col*width+j]
			}
		}
	}
	return status
}

func swapRows(m *ComplexMatrix, a, b int) {
	w := m.cols
	for j := 0; j < w; j++ {
		m.data[a*w+j], m.data[b*w+j] = m.data[b*w+j], m.data[a*w+j]
	}
}
