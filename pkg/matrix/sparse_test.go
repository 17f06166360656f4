package matrix

import (
	"math/cmplx"
	"testing"
)

func TestCircuitMatrixSolveReal(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, 2)
	a.Set(0, 1, -1)
	a.Set(1, 0, -1)
	a.Set(1, 1, 2)

	cm, err := NewCircuitMatrix(2)
	if err != nil {
		t.Fatalf("NewCircuitMatrix: %v", err)
	}
	defer cm.Destroy()

	if err := cm.Load(a); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cm.Factor(); err != nil {
		t.Fatalf("Factor: %v", err)
	}

	x, err := cm.SolveComplex([]complex128{1, 0})
	if err != nil {
		t.Fatalf("SolveComplex: %v", err)
	}
	if cmplx.Abs(x[0]-complex(2.0/3, 0)) > 1e-12 || cmplx.Abs(x[1]-complex(1.0/3, 0)) > 1e-12 {
		t.Errorf("solution = %v, want [2/3 1/3]", x)
	}
}

func TestCircuitMatrixSolveComplex(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, complex(1, 1))
	a.Set(1, 1, complex(0, 2))

	cm, err := NewCircuitMatrix(2)
	if err != nil {
		t.Fatalf("NewCircuitMatrix: %v", err)
	}
	defer cm.Destroy()

	if err := cm.Load(a); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cm.Factor(); err != nil {
		t.Fatalf("Factor: %v", err)
	}

	x, err := cm.SolveComplex([]complex128{2, complex(0, 2)})
	if err != nil {
		t.Fatalf("SolveComplex: %v", err)
	}
	if cmplx.Abs(x[0]-complex(1, -1)) > 1e-12 {
		t.Errorf("x[0] = %v, want (1-1i)", x[0])
	}
	if cmplx.Abs(x[1]-1) > 1e-12 {
		t.Errorf("x[1] = %v, want 1", x[1])
	}
}

// One factorization serves every port excitation of a frequency point.
func TestCircuitMatrixFactorOnceSolveMany(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, 4)
	a.Set(1, 1, 2)

	cm, err := NewCircuitMatrix(2)
	if err != nil {
		t.Fatalf("NewCircuitMatrix: %v", err)
	}
	defer cm.Destroy()

	if err := cm.Load(a); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cm.Factor(); err != nil {
		t.Fatalf("Factor: %v", err)
	}

	x1, err := cm.SolveComplex([]complex128{4, 0})
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	x2, err := cm.SolveComplex([]complex128{0, 4})
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if cmplx.Abs(x1[0]-1) > 1e-12 || cmplx.Abs(x1[1]) > 1e-12 {
		t.Errorf("first solution = %v, want [1 0]", x1)
	}
	if cmplx.Abs(x2[0]) > 1e-12 || cmplx.Abs(x2[1]-2) > 1e-12 {
		t.Errorf("second solution = %v, want [0 2]", x2)
	}
}

func TestCircuitMatrixLoadSizeMismatch(t *testing.T) {
	cm, err := NewCircuitMatrix(2)
	if err != nil {
		t.Fatalf("NewCircuitMatrix: %v", err)
	}
	defer cm.Destroy()

	if err := cm.Load(New(3, 3)); err == nil {
		t.Error("loading a 3x3 matrix into a size-2 system should fail")
	}
	if _, err := cm.SolveComplex([]complex128{1}); err == nil {
		t.Error("short rhs should fail")
	}
}
