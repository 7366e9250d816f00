package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponsePassthrough(t *testing.T) {
	c := Coefficients{B0: 1}
	for _, f := range []float64{10, 1000, 20000} {
		if mag := c.MagnitudeDB(f, 48000); !almostEqual(mag, 0, 1e-12) {
			t.Fatalf("%v Hz: %v dB, want 0", f, mag)
		}
	}
}

func TestResponseAllpass(t *testing.T) {
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}

	for _, f := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		if mag := cmplx.Abs(c.Response(f, 48000)); !almostEqual(mag, 1, 1e-10) {
			t.Fatalf("%v Hz: |H| = %v, want 1", f, mag)
		}
	}
}

func TestChainResponseIsProduct(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs)

	for _, f := range []float64{100, 1000, 10000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		got := chain.Response(f, 48000)
		if cmplx.Abs(got-want) > 1e-10 {
			t.Fatalf("%v Hz: got %v, want %v", f, got, want)
		}

		if db := chain.MagnitudeDB(f, 48000); !almostEqual(db, 20*math.Log10(cmplx.Abs(want)), 1e-10) {
			t.Fatalf("%v Hz: MagnitudeDB = %v", f, db)
		}
	}
}

func TestChainImpulseResponseRestoresState(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs)
	chain.ProcessSample(0.5)
	chain.ProcessSample(0.3)

	saved := chain.State()
	ir := chain.ImpulseResponse(16)

	for i, st := range chain.State() {
		if st != saved[i] {
			t.Fatalf("section %d state changed", i)
		}
	}

	ref := NewChain(coeffs)
	for i, want := range ir {
		x := 0.0
		if i == 0 {
			x = 1
		}

		if got := ref.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("ir[%d] = %v, want %v", i, want, got)
		}
	}

	if chain.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}
