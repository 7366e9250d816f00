package level

import "github.com/cwbudde/algo-vecmath"

// PhaseFactor returns -1 when invert is set, +1 otherwise.
func PhaseFactor(invert bool) float64 {
	if invert {
		return -1
	}

	return 1
}

// Invert flips the polarity of buf in place.
func Invert(buf []float64) {
	vecmath.ScaleBlock(buf, buf, -1)
}

// ApplyPhase inverts buf when invert is set.
func ApplyPhase(buf []float64, invert bool) {
	if invert {
		Invert(buf)
	}
}

// MonoSum folds a stereo pair to mono in place: both channels become
// (L+R)/2. right is read before either channel is written.
func MonoSum(left, right []float64) {
	right = right[:len(left)]
	for i := range left {
		m := 0.5 * (left[i] + right[i])
		left[i] = m
		right[i] = m
	}
}
