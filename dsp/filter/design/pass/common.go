package pass

import (
	"math"

	"github.com/cwbudde/algo-utility/dsp/filter/biquad"
)

// validFreq reports whether 0 < freq < sampleRate/2 and both are finite.
func validFreq(freq, sampleRate float64) bool {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return false
	}

	return freq > 0 && freq < sampleRate/2 && !math.IsNaN(freq) && !math.IsInf(freq, 0)
}

// ButterworthQ returns the quality factor of section index (0-based) of an
// order-n Butterworth cascade.
func ButterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm}
}
