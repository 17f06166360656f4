package rfmath

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/edp1096/rfsim/internal/consts"
)

func TestDiv(t *testing.T) {
	got := Div(6, 3)
	if got != 2 {
		t.Errorf("Div(6,3) = %v, want 2", got)
	}

	got = Div(complex(0, 4), complex(0, 2))
	if got != 2 {
		t.Errorf("Div(4i,2i) = %v, want 2", got)
	}
}

func TestDivByZeroYieldsOpenCircuit(t *testing.T) {
	got := Div(1, 0)
	if got != OpenCircuit {
		t.Errorf("Div(1,0) = %v, want open-circuit sentinel", got)
	}
	if !IsInf(got) {
		t.Error("open-circuit sentinel must report IsInf")
	}
	if imag(got) != 0 {
		t.Errorf("sentinel imaginary part = %v, want 0", imag(got))
	}
}

func TestReciprocal(t *testing.T) {
	got := Reciprocal(complex(0, 2))
	if cmplx.Abs(got-complex(0, -0.5)) > 1e-15 {
		t.Errorf("Reciprocal(2i) = %v, want -0.5i", got)
	}
	if !IsInf(Reciprocal(0)) {
		t.Error("Reciprocal(0) must be the open-circuit sentinel")
	}
}

func TestFromPolar(t *testing.T) {
	got := FromPolar(2, math.Pi/2)
	if cmplx.Abs(got-complex(0, 2)) > 1e-15 {
		t.Errorf("FromPolar(2, pi/2) = %v, want 2i", got)
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(complex(1e-16, 0), 1e-12) {
		t.Error("1e-16 within 1e-12 tolerance should be zero")
	}
	if IsZero(complex(1e-6, 0), 1e-12) {
		t.Error("1e-6 should not be zero at 1e-12 tolerance")
	}
}

func TestIsNaN(t *testing.T) {
	nan := math.NaN()
	for _, z := range []complex128{complex(nan, 0), complex(0, nan), complex(nan, nan)} {
		if !IsNaN(z) {
			t.Errorf("IsNaN(%v) = false, want true", z)
		}
	}
	if IsNaN(OpenCircuit) {
		t.Error("IsNaN should not report the open sentinel")
	}
	if IsNaN(1 + 2i) {
		t.Error("IsNaN(1+2i) = true, want false")
	}
}

func TestMagnitudeDB(t *testing.T) {
	got := MagnitudeDB(0.5)
	want := 20 * math.Log10(0.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MagnitudeDB(0.5) = %v, want %v", got, want)
	}

	if got := MagnitudeDB(0); got != consts.MagnitudeFloor {
		t.Errorf("MagnitudeDB(0) = %v, want floor %v", got, consts.MagnitudeFloor)
	}
	if got := MagnitudeDB(1e-10); got != consts.MagnitudeFloor {
		t.Errorf("MagnitudeDB(1e-10) = %v, want clamped to floor %v", got, consts.MagnitudeFloor)
	}
}

func TestPhaseDeg(t *testing.T) {
	if got := PhaseDeg(complex(0, 1)); math.Abs(got-90) > 1e-12 {
		t.Errorf("PhaseDeg(i) = %v, want 90", got)
	}
	if got := PhaseDeg(-1); math.Abs(got-180) > 1e-12 {
		t.Errorf("PhaseDeg(-1) = %v, want 180", got)
	}
}

func TestGammaImpedanceRoundTrip(t *testing.T) {
	z := complex(75, 25)
	gamma := ImpedanceToGamma(z, 50)
	back := GammaToImpedance(gamma, 50)
	if cmplx.Abs(back-z) > 1e-9 {
		t.Errorf("round trip of %v gave %v", z, back)
	}
}

func TestGammaOpenConventions(t *testing.T) {
	if got := ImpedanceToGamma(OpenCircuit, 50); got != 1 {
		t.Errorf("ImpedanceToGamma(open) = %v, want 1", got)
	}
	if got := GammaToImpedance(1, 50); !IsInf(got) {
		t.Errorf("GammaToImpedance(1) = %v, want open sentinel", got)
	}
}

func TestVSWR(t *testing.T) {
	if got := VSWR(0); got != 1 {
		t.Errorf("VSWR(0) = %v, want 1", got)
	}
	if got := VSWR(0.5); math.Abs(got-3) > 1e-12 {
		t.Errorf("VSWR(0.5) = %v, want 3", got)
	}
	if got := VSWR(1); !math.IsInf(got, 1) {
		t.Errorf("VSWR(1) = %v, want +Inf", got)
	}
	if got := VSWR(complex(1.2, 0)); !math.IsInf(got, 1) {
		t.Errorf("VSWR(1.2) = %v, want +Inf, never NaN", got)
	}
}
