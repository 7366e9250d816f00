package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-utility/dsp/core"
)

// PanGains returns the sin3dB law gains for pan in -1..1: -3 dB on both
// sides at centre, hard left silences the right channel and vice versa.
func PanGains(pan float64) (left, right float64) {
	normalized := 0.5 * (core.Clamp(pan, -1, 1) + 1)

	return math.Sin(0.5 * math.Pi * (1 - normalized)), math.Sin(0.5 * math.Pi * normalized)
}

// PannerOption mutates panner construction parameters.
type PannerOption func(*pannerConfig) error

type pannerConfig struct {
	pan   float64
	boost float64
}

// WithPan sets the initial position in -1..1.
func WithPan(pan float64) PannerOption {
	return func(cfg *pannerConfig) error {
		if pan < -1 || pan > 1 || math.IsNaN(pan) {
			return fmt.Errorf("panner position must be in [-1, 1]: %f", pan)
		}

		cfg.pan = pan

		return nil
	}
}

// WithCentreBoost sets the factor applied on top of PanGains. The default
// √2 makes the centre position unity gain.
func WithCentreBoost(boost float64) PannerOption {
	return func(cfg *pannerConfig) error {
		if !(boost > 0) || math.IsInf(boost, 0) {
			return fmt.Errorf("panner centre boost must be > 0 and finite: %f", boost)
		}

		cfg.boost = boost

		return nil
	}
}

// Panner applies an equal-power pan to a stereo pair. When the position
// changes, the gains ramp linearly across the next block.
type Panner struct {
	boost   float64
	target  float64
	applied float64

	gainL, gainR float64
}

// NewPanner creates a centred panner.
func NewPanner(opts ...PannerOption) (*Panner, error) {
	cfg := pannerConfig{boost: math.Sqrt2}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	p := &Panner{boost: cfg.boost, target: cfg.pan}
	p.Reset()

	return p, nil
}

// SetPan sets the target position, clamped to -1..1.
func (p *Panner) SetPan(pan float64) {
	if math.IsNaN(pan) {
		pan = 0
	}

	p.target = core.Clamp(pan, -1, 1)
}

// Pan returns the target position.
func (p *Panner) Pan() float64 { return p.target }

// Gains returns the left and right gains applied at the end of the last
// block.
func (p *Panner) Gains() (left, right float64) { return p.gainL, p.gainR }

// ProcessStereoInPlace pans the pair in place.
func (p *Panner) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("panner: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	n := len(left)
	if n == 0 {
		return nil
	}

	if p.target == p.applied {
		vecmath.ScaleBlock(left, left, p.gainL)
		vecmath.ScaleBlock(right, right, p.gainR)

		return nil
	}

	l, r := PanGains(p.target)
	l *= p.boost
	r *= p.boost

	stepL := (l - p.gainL) / float64(n)
	stepR := (r - p.gainR) / float64(n)

	for i := range left {
		k := float64(i + 1)
		left[i] *= p.gainL + stepL*k
		right[i] *= p.gainR + stepR*k
	}

	p.applied = p.target
	p.gainL, p.gainR = l, r

	return nil
}

// Reset jumps to the target position without a ramp.
func (p *Panner) Reset() {
	p.applied = p.target
	p.gainL, p.gainR = PanGains(p.target)
	p.gainL *= p.boost
	p.gainR *= p.boost
}
