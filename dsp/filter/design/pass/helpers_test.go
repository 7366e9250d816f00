package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-utility/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func cascadeResponse(sections []biquad.Coefficients, freq, sr float64) complex128 {
	h := complex(1, 0)
	for i := range sections {
		h *= sections[i].Response(freq, sr)
	}

	return h
}

func assertStable(t *testing.T, sections []biquad.Coefficients) {
	t.Helper()

	for i, c := range sections {
		for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("section %d: non-finite coefficient in %#v", i, c)
			}
		}

		disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
		r1 := (-complex(c.A1, 0) + disc) / 2
		r2 := (-complex(c.A1, 0) - disc) / 2
		if cmplx.Abs(r1) >= 1+tol || cmplx.Abs(r2) >= 1+tol {
			t.Fatalf("section %d: unstable poles %v %v", i, r1, r2)
		}
	}
}
