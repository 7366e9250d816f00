package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// StereoNoise returns two independent deterministic noise channels.
func StereoNoise(seed int64, amplitude float64, length int) (left, right []float64) {
	return DeterministicNoise(seed, amplitude, length), DeterministicNoise(seed+1, amplitude, length)
}

// AntiphaseNoise returns noise on the left channel and its negation on the
// right, the worst case for a mono fold-down.
func AntiphaseNoise(seed int64, amplitude float64, length int) (left, right []float64) {
	left = DeterministicNoise(seed, amplitude, length)
	right = make([]float64, length)
	for i, v := range left {
		right[i] = -v
	}

	return left, right
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Clone deep-copies a set of channels.
func Clone(channels ...[]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for c, ch := range channels {
		out[c] = append([]float64(nil), ch...)
	}

	return out
}
