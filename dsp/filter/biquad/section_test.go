package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessSample_DFIIT(t *testing.T) {
	// x = [1, 0, 0, 0] through B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04:
	//
	// n=0: y=0.25          d0=0.55   d1=0.24
	// n=1: y=0.55          d0=0.35   d1=-0.022
	// n=2: y=0.35          d0=0.048  d1=-0.014
	// n=3: y=0.048
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}

		if got := s.ProcessSample(x); !almostEqual(got, w, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, w)
		}
	}
}

func TestProcessBlock_MatchesProcessSample(t *testing.T) {
	c := Coefficients{B0: 0.1, B1: 0.2, B2: 0.1, A1: -1.2, A2: 0.45}

	for _, n := range []int{0, 1, 2, 3, 7, 64, 129} {
		ref := NewSection(c)
		blk := NewSection(c)

		buf := make([]float64, n)
		want := make([]float64, n)
		for i := range buf {
			buf[i] = math.Sin(float64(i) * 0.3)
			want[i] = ref.ProcessSample(buf[i])
		}

		blk.ProcessBlock(buf)

		for i := range buf {
			if !almostEqual(buf[i], want[i], 1e-12) {
				t.Fatalf("n=%d sample %d: got %v, want %v", n, i, buf[i], want[i])
			}
		}

		st, rs := blk.State(), ref.State()
		if !almostEqual(st[0], rs[0], 1e-12) || !almostEqual(st[1], rs[1], 1e-12) {
			t.Fatalf("n=%d: state %v, want %v", n, st, rs)
		}
	}
}

func TestProcessBlockTo(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.5}
	s := NewSection(c)

	src := []float64{1, 2, 3, 4}
	dst := make([]float64, 4)
	s.ProcessBlockTo(dst, src)

	want := []float64{0.5, 1.5, 2.5, 3.5}
	for i := range want {
		if !almostEqual(dst[i], want[i], eps) {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	if src[0] != 1 {
		t.Fatal("ProcessBlockTo modified src")
	}

	s.ProcessBlockTo(nil, nil)
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)

	before := s.State()
	s.SetCoefficients(Coefficients{B0: 1})

	if s.State() != before {
		t.Fatalf("state changed: %v -> %v", before, s.State())
	}
}

func TestSectionResetAndState(t *testing.T) {
	s := NewSection(Coefficients{B0: 1, B1: 1, B2: 1})
	s.ProcessSample(1)

	if s.State() == [2]float64{} {
		t.Fatal("expected non-zero state")
	}

	saved := s.State()
	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState = %v, want %v", s.State(), saved)
	}
}

func TestKernelName(t *testing.T) {
	if KernelName() == "" {
		t.Fatal("no kernel selected")
	}
}

func TestProcessBlock_SilenceSettlesToZero(t *testing.T) {
	// Poles at radius 0.995: the tail reaches 1e-30 after ~14k samples.
	c := Coefficients{B0: 0.01, A1: -1.99, A2: 0.9901}

	for _, to := range []bool{false, true} {
		s := NewSection(c)
		s.ProcessSample(1)

		buf := make([]float64, 512)
		dst := make([]float64, 512)

		for range 100 {
			clear(buf)

			if to {
				s.ProcessBlockTo(dst, buf)
			} else {
				s.ProcessBlock(buf)
				copy(dst, buf)
			}
		}

		if s.State() != [2]float64{} {
			t.Fatalf("to=%v: state %v, want zero", to, s.State())
		}

		for i, v := range dst {
			if v != 0 {
				t.Fatalf("to=%v: sample %d = %g, want 0", to, i, v)
			}
		}
	}
}
