package meter

import (
	"fmt"
	"math"

	"github.com/meko-christian/algo-approx"
)

const (
	defaultReleaseDBPerSecond = 20.0
	defaultRMSWindowSeconds   = 0.3
)

// Option mutates meter construction parameters.
type Option func(*config) error

type config struct {
	releaseDBPerSec float64
	rmsWindowSec    float64
}

// WithRelease sets how fast the held peak falls, in dB per second.
func WithRelease(dbPerSecond float64) Option {
	return func(cfg *config) error {
		if !(dbPerSecond > 0) || math.IsInf(dbPerSecond, 0) {
			return fmt.Errorf("meter release must be > 0 dB/s: %f", dbPerSecond)
		}

		cfg.releaseDBPerSec = dbPerSecond

		return nil
	}
}

// WithRMSWindow sets the time constant of the RMS average.
func WithRMSWindow(seconds float64) Option {
	return func(cfg *config) error {
		if !(seconds > 0) || math.IsInf(seconds, 0) {
			return fmt.Errorf("meter RMS window must be > 0: %f", seconds)
		}

		cfg.rmsWindowSec = seconds

		return nil
	}
}

// Meter follows one channel block by block: the peak is held and released
// at a fixed rate, the RMS is an exponential average of block mean squares.
type Meter struct {
	sampleRate float64
	cfg        config

	peak       float64
	meanSquare float64
	maxPeak    float64
}

// New creates a meter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Meter, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("meter sample rate must be > 0: %f", sampleRate)
	}

	cfg := config{
		releaseDBPerSec: defaultReleaseDBPerSecond,
		rmsWindowSec:    defaultRMSWindowSeconds,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Meter{sampleRate: sampleRate, cfg: cfg}, nil
}

// Process updates the meter with one block.
func (m *Meter) Process(block []float64) {
	n := len(block)
	if n == 0 {
		return
	}

	dt := float64(n) / m.sampleRate

	// Release is linear in dB, so the held peak decays exponentially.
	m.peak *= approx.FastExp(-m.cfg.releaseDBPerSec * dt * ln10 / 20)
	m.peak = max(m.peak, PeakAbs(block))
	m.maxPeak = max(m.maxPeak, m.peak)

	alpha := approx.FastExp(-dt / m.cfg.rmsWindowSec)
	m.meanSquare = alpha*m.meanSquare + (1-alpha)*MeanSquare(block)
}

// Levels returns the current held peak and averaged RMS.
func (m *Meter) Levels() Levels {
	return Levels{Peak: m.peak, RMS: math.Sqrt(m.meanSquare)}
}

// MaxPeak returns the highest peak seen since Reset.
func (m *Meter) MaxPeak() float64 { return m.maxPeak }

// Reset clears all readings.
func (m *Meter) Reset() {
	m.peak = 0
	m.meanSquare = 0
	m.maxPeak = 0
}
