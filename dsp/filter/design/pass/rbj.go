package pass

import (
	"math"

	"github.com/cwbudde/algo-utility/dsp/filter/biquad"
)

// LowpassRBJ designs a second-order lowpass (Audio EQ Cookbook). Invalid
// arguments yield the zero Coefficients value.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if !validFreq(freq, sampleRate) {
		return biquad.Coefficients{}
	}

	cw, alpha := rbjTerms(freq, q, sampleRate)
	a0 := 1 + alpha

	return biquad.Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

// HighpassRBJ designs a second-order highpass (Audio EQ Cookbook).
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if !validFreq(freq, sampleRate) {
		return biquad.Coefficients{}
	}

	cw, alpha := rbjTerms(freq, q, sampleRate)
	a0 := 1 + alpha

	return biquad.Coefficients{
		B0: (1 + cw) / 2 / a0,
		B1: -(1 + cw) / a0,
		B2: (1 + cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}
}

func rbjTerms(freq, q, sampleRate float64) (cw, alpha float64) {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		q = 1 / math.Sqrt2
	}

	w0 := 2 * math.Pi * freq / sampleRate

	return math.Cos(w0), math.Sin(w0) / (2 * q)
}
