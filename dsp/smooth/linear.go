package smooth

import "math"

// Linear ramps linearly towards a target over a fixed number of samples.
// The zero value holds 0 and jumps straight to any target until Reset
// configures a ramp length.
type Linear struct {
	current float64
	target  float64
	step    float64

	rampSamples int
	countdown   int
}

// NewLinear returns a ramp of rampSeconds at sampleRate starting at value.
func NewLinear(sampleRate, rampSeconds, value float64) *Linear {
	l := &Linear{}
	l.Reset(sampleRate, rampSeconds)
	l.SetCurrentAndTarget(value)

	return l
}

// Reset sets the ramp length to floor(rampSeconds*sampleRate) samples. The
// current value is kept and any ramp in progress ends there.
func (l *Linear) Reset(sampleRate, rampSeconds float64) {
	n := math.Floor(rampSeconds * sampleRate)
	if !(n > 0) {
		n = 0
	}

	l.rampSamples = int(min(n, math.MaxInt32))
	l.target = l.current
	l.step = 0
	l.countdown = 0
}

// SetCurrentAndTarget jumps to v without ramping.
func (l *Linear) SetCurrentAndTarget(v float64) {
	l.current = v
	l.target = v
	l.step = 0
	l.countdown = 0
}

// SetTarget starts a ramp from the current value to v. Repeating the
// active target is a no-op.
func (l *Linear) SetTarget(v float64) {
	if v == l.target {
		return
	}

	if l.rampSamples == 0 {
		l.SetCurrentAndTarget(v)
		return
	}

	l.target = v
	l.countdown = l.rampSamples
	l.step = (l.target - l.current) / float64(l.countdown)
}

// Next advances one sample and returns the new value.
func (l *Linear) Next() float64 {
	if l.countdown <= 0 {
		return l.target
	}

	l.countdown--
	if l.countdown == 0 {
		l.current = l.target
	} else {
		l.current += l.step
	}

	return l.current
}

// Skip advances n samples at once and returns the value reached.
func (l *Linear) Skip(n int) float64 {
	if n <= 0 {
		return l.current
	}

	if n >= l.countdown {
		l.current = l.target
		l.countdown = 0

		return l.current
	}

	l.current += l.step * float64(n)
	l.countdown -= n

	return l.current
}

// Current returns the value produced by the last Next or Skip.
func (l *Linear) Current() float64 { return l.current }

// Target returns the destination of the active ramp.
func (l *Linear) Target() float64 { return l.target }

// IsSmoothing reports whether a ramp is in progress.
func (l *Linear) IsSmoothing() bool { return l.countdown > 0 }

// Step returns the per-sample increment of the active ramp.
func (l *Linear) Step() float64 { return l.step }

// RampSamples returns the configured ramp length.
func (l *Linear) RampSamples() int { return l.rampSamples }
