package pass

import "github.com/cwbudde/algo-utility/dsp/filter/biquad"

// ButterworthLP designs a lowpass Butterworth cascade. Odd orders end with
// a first-order section (B2 = A2 = 0). Returns nil for invalid arguments.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return ButterworthLPInto(nil, freq, order, sampleRate)
}

// ButterworthHP designs a highpass Butterworth cascade.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return ButterworthHPInto(nil, freq, order, sampleRate)
}

// ButterworthLPInto appends the lowpass cascade to dst[:0].
func ButterworthLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validFreq(freq, sampleRate) {
		return nil
	}

	dst = dst[:0]
	for i := order/2 - 1; i >= 0; i-- {
		dst = append(dst, LowpassRBJ(freq, ButterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		dst = append(dst, firstOrderLP(freq, sampleRate))
	}

	return dst
}

// ButterworthHPInto appends the highpass cascade to dst[:0].
func ButterworthHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !validFreq(freq, sampleRate) {
		return nil
	}

	dst = dst[:0]
	for i := order/2 - 1; i >= 0; i-- {
		dst = append(dst, HighpassRBJ(freq, ButterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		dst = append(dst, firstOrderHP(freq, sampleRate))
	}

	return dst
}
