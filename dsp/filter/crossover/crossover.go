package crossover

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-utility/dsp/filter/biquad"
	"github.com/cwbudde/algo-utility/dsp/filter/design/pass"
)

// MinFreq is the lowest cutoff SetFreq accepts. Lower, non-finite or
// non-positive requests are raised to it.
const MinFreq = 10.0

// Crossover is a two-way Linkwitz-Riley crossover network that splits
// an input signal into complementary lowpass and highpass outputs.
//
// The lowpass and highpass outputs sum to an allpass-filtered version
// of the input (flat magnitude response). Polarity correction for
// orders ≡ 2 mod 4 (LR2, LR6, …) is handled automatically.
type Crossover struct {
	lp    *biquad.Chain
	hp    *biquad.Chain
	freq  float64
	order int
	sr    float64

	// Coefficient scratch reused by SetFreq.
	lpCoeffs []biquad.Coefficients
	hpCoeffs []biquad.Coefficients
}

// New creates a two-way Linkwitz-Riley crossover at the given frequency
// and order. The order must be a positive even integer (2, 4, 6, 8, …).
//
// Returns an error for invalid parameters.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("crossover: order must be a positive even integer, got %d", order)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}

	if !(freq > 0) || freq >= sampleRate/2 {
		return nil, fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	sections := order / 2
	c := &Crossover{
		order:    order,
		sr:       sampleRate,
		lpCoeffs: make([]biquad.Coefficients, 0, sections),
		hpCoeffs: make([]biquad.Coefficients, 0, sections),
	}

	if !c.design(freq) {
		return nil, fmt.Errorf("crossover: failed to design LR%d at %.1f Hz", order, freq)
	}

	c.lp = biquad.NewChain(c.lpCoeffs)
	c.hp = biquad.NewChain(c.hpCoeffs)

	return c, nil
}

func (c *Crossover) design(freq float64) bool {
	lp := pass.LinkwitzRileyLPInto(c.lpCoeffs, freq, c.order, c.sr)
	hp := pass.LinkwitzRileyHPInto(c.hpCoeffs, freq, c.order, c.sr)

	// A failed design returns nil; keep the old storage.
	if len(lp) == 0 || len(hp) == 0 {
		return false
	}

	c.lpCoeffs, c.hpCoeffs = lp, hp

	if pass.LinkwitzRileyNeedsHPInvert(c.order) {
		pass.InvertPolarity(c.hpCoeffs)
	}

	c.freq = freq

	return true
}

// ClampFreq limits freq to [MinFreq, sampleRate/4]. NaN and non-positive
// values map to MinFreq.
func ClampFreq(freq, sampleRate float64) float64 {
	hi := sampleRate / 4
	if hi < MinFreq {
		hi = MinFreq
	}

	switch {
	case math.IsNaN(freq) || freq < MinFreq:
		return MinFreq
	case freq > hi:
		return hi
	default:
		return freq
	}
}

// SetFreq moves the crossover point without clearing the filter state, so
// it can be called between blocks while audio is running. The frequency is
// clamped with ClampFreq. It does not allocate.
func (c *Crossover) SetFreq(freq float64) {
	freq = ClampFreq(freq, c.sr)
	if freq == c.freq {
		return
	}

	if !c.design(freq) {
		return
	}

	c.lp.UpdateCoefficients(c.lpCoeffs)
	c.hp.UpdateCoefficients(c.hpCoeffs)
}

// ProcessSample filters one input sample and returns the lowpass and
// highpass outputs. Their sum is allpass (flat magnitude response).
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// ProcessBlock filters a block of input samples, writing the lowpass
// output to lo and the highpass output to hi. lo and hi must be at least
// as long as input. input may alias neither output.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	n := len(input)
	if n == 0 {
		return
	}

	_ = lo[n-1]
	_ = hi[n-1]

	c.lp.ProcessBlockTo(lo[:n], input)
	c.hp.ProcessBlockTo(hi[:n], input)
}

// LP returns the lowpass chain for direct inspection or analysis.
func (c *Crossover) LP() *biquad.Chain { return c.lp }

// HP returns the highpass chain for direct inspection or analysis.
// For orders ≡ 2 mod 4, this chain includes the polarity inversion.
func (c *Crossover) HP() *biquad.Chain { return c.hp }

// Freq returns the crossover frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// Order returns the Linkwitz-Riley order (always even).
func (c *Crossover) Order() int { return c.order }

// SampleRate returns the sample rate in Hz.
func (c *Crossover) SampleRate() float64 { return c.sr }

// Reset clears the internal filter states of both LP and HP chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}
