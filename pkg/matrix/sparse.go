package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// CircuitMatrix wraps the sparse complex LU solver for the nodal
// admittance system. The matrix is factored once per frequency point and
// re-solved for each port excitation.
type CircuitMatrix struct {
	size    int
	matrix  *sparse.Matrix
	rhs     []float64
	rhsImag []float64
	config  *sparse.Configuration
}

func NewCircuitMatrix(size int) (*CircuitMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	return &CircuitMatrix{
		size:    size,
		matrix:  mat,
		rhs:     make([]float64, size+1), // 1-based indexing
		rhsImag: make([]float64, size+1),
		config:  config,
	}, nil
}

func (m *CircuitMatrix) Size() int { return m.size }

// Load copies a dense n x n admittance matrix into the sparse structure.
func (m *CircuitMatrix) Load(a *ComplexMatrix) error {
	if a.Rows() != m.size || a.Cols() != m.size {
		return fmt.Errorf("loading %dx%d matrix into size %d system", a.Rows(), a.Cols(), m.size)
	}

	m.matrix.Clear()
	for i := 0; i < m.size; i++ {
		for j := 0; j < m.size; j++ {
			v := a.Get(i, j)
			if v == 0 {
				continue
			}
			element := m.matrix.GetElement(int64(i+1), int64(j+1))
			element.Real = real(v)
			element.Imag = imag(v)
		}
	}
	return nil
}

func (m *CircuitMatrix) Factor() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}
	return nil
}

// SolveComplex solves the factored system for one right-hand side.
func (m *CircuitMatrix) SolveComplex(b []complex128) ([]complex128, error) {
	if len(b) != m.size {
		return nil, fmt.Errorf("rhs length %d does not match size %d system", len(b), m.size)
	}

	for i := 0; i < m.size; i++ {
		m.rhs[i+1] = real(b[i])
		m.rhsImag[i+1] = imag(b[i])
	}

	solReal, solImag, err := m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return nil, fmt.Errorf("matrix solve failed: %w", err)
	}

	x := make([]complex128, m.size)
	for i := 0; i < m.size; i++ {
		x[i] = complex(solReal[i+1], solImag[i+1])
	}
	return x, nil
}

func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
