package matrix

import "fmt"

// ComplexMatrix is a dense rows x cols grid of complex128, zero-initialized.
// Index bounds and dimension mismatches are caller bugs and panic.
type ComplexMatrix struct {
	rows, cols int
	data       []complex128
}

func New(rows, cols int) *ComplexMatrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid dimensions %dx%d", rows, cols))
	}
	return &ComplexMatrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *ComplexMatrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *ComplexMatrix) Rows() int { return m.rows }
func (m *ComplexMatrix) Cols() int { return m.cols }

func (m *ComplexMatrix) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of bounds for %dx%d", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

func (m *ComplexMatrix) Get(i, j int) complex128 {
	return m.data[m.index(i, j)]
}

func (m *ComplexMatrix) Set(i, j int, v complex128) {
	m.data[m.index(i, j)] = v
}

// SetReal sets cell (i,j) to the purely real value x.
func (m *ComplexMatrix) SetReal(i, j int, x float64) {
	m.data[m.index(i, j)] = complex(x, 0)
}

// AddAt accumulates v into cell (i,j).
func (m *ComplexMatrix) AddAt(i, j int, v complex128) {
	m.data[m.index(i, j)] += v
}

func (m *ComplexMatrix) Clone() *ComplexMatrix {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Scale returns m multiplied elementwise by k.
func (m *ComplexMatrix) Scale(k complex128) *ComplexMatrix {
	c := New(m.rows, m.cols)
	for i, v := range m.data {
		c.data[i] = v * k
	}
	return c
}

func (m *ComplexMatrix) Add(o *ComplexMatrix) *ComplexMatrix {
	m.requireSameShape(o)
	c := New(m.rows, m.cols)
	for i := range m.data {
		c.data[i] = m.data[i] + o.data[i]
	}
	return c
}

func (m *ComplexMatrix) Sub(o *ComplexMatrix) *ComplexMatrix {
	m.requireSameShape(o)
	c := New(m.rows, m.cols)
	for i := range m.data {
		c.data[i] = m.data[i] - o.data[i]
	}
	return c
}

// Mul returns the matrix product m*o. Inner dimensions must agree.
func (m *ComplexMatrix) Mul(o *ComplexMatrix) *ComplexMatrix {
	if m.cols != o.rows {
		panic(fmt.Sprintf("matrix: multiply dimension mismatch %dx%d * %dx%d", m.rows, m.cols, o.rows, o.cols))
	}
	c := New(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			aik := m.data[i*m.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < o.cols; j++ {
				c.data[i*o.cols+j] += aik * o.data[k*o.cols+j]
			}
		}
	}
	return c
}

func (m *ComplexMatrix) requireSameShape(o *ComplexMatrix) {
	if m.rows != o.rows || m.cols != o.cols {
		panic(fmt.Sprintf("matrix: shape mismatch %dx%d vs %dx%d", m.rows, m.cols, o.rows, o.cols))
	}
}
