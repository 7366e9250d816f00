package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	if floats.EqualApprox(got, want, eps) {
		return
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	if len(a) == 0 {
		return 0, nil
	}

	return floats.Distance(a, b, math.Inf(1)), nil
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	return floats.Dot(x, x)
}

// ErrorDB returns the level of (got-want) relative to want in dB.
func ErrorDB(got, want []float64) float64 {
	diff := make([]float64, len(got))
	floats.SubTo(diff, got, want)

	ref := Energy(want)
	if ref == 0 {
		return math.Inf(1)
	}

	e := Energy(diff)
	if e == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(e/ref)
}
