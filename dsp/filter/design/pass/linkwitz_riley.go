package pass

import "github.com/cwbudde/algo-utility/dsp/filter/biquad"

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given
// positive even order: two identical Butterworth cascades of half the
// order, giving -6.02 dB at freq.
//
// Paired with [LinkwitzRileyHP] the two outputs sum to an allpass. For
// orders ≡ 2 mod 4 the highpass must be inverted first, see
// [LinkwitzRileyHPInverted].
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return LinkwitzRileyLPInto(nil, freq, order, sampleRate)
}

// LinkwitzRileyHP designs the complementary highpass cascade.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return LinkwitzRileyHPInto(nil, freq, order, sampleRate)
}

// LinkwitzRileyHPInverted is LinkwitzRileyHP with flipped polarity.
func LinkwitzRileyHPInverted(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := LinkwitzRileyHP(freq, order, sampleRate)
	if sections == nil {
		return nil
	}

	InvertPolarity(sections)

	return sections
}

// LinkwitzRileyNeedsHPInvert reports whether order ≡ 2 mod 4.
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order > 0 && order%4 == 2
}

// LinkwitzRileyLPInto appends the lowpass cascade to dst[:0]. It does not
// allocate when cap(dst) >= order.
func LinkwitzRileyLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	dst = ButterworthLPInto(dst, freq, order/2, sampleRate)

	return doubleSections(dst)
}

// LinkwitzRileyHPInto appends the highpass cascade to dst[:0].
func LinkwitzRileyHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	dst = ButterworthHPInto(dst, freq, order/2, sampleRate)

	return doubleSections(dst)
}

func doubleSections(bw []biquad.Coefficients) []biquad.Coefficients {
	if bw == nil {
		return nil
	}

	n := len(bw)
	for i := range n {
		bw = append(bw, bw[i])
	}

	return bw
}

// InvertPolarity negates the cascade by flipping the first section's
// numerator.
func InvertPolarity(sections []biquad.Coefficients) {
	if len(sections) == 0 {
		return
	}

	sections[0].B0 = -sections[0].B0
	sections[0].B1 = -sections[0].B1
	sections[0].B2 = -sections[0].B2
}
