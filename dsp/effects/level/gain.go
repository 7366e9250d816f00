package level

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/smooth"
)

// RampMode selects how Gain moves between levels.
type RampMode int

const (
	// RampBlock interpolates from the previous to the new gain across the
	// first block processed after a change.
	RampBlock RampMode = iota
	// RampTime ramps per sample over a fixed time, independent of the
	// block size.
	RampTime
)

func (m RampMode) String() string {
	switch m {
	case RampBlock:
		return "block"
	case RampTime:
		return "time"
	default:
		return fmt.Sprintf("RampMode(%d)", int(m))
	}
}

const (
	defaultGainRampSeconds = 0.005

	// DefaultFloorDB is the level at and below which Gain outputs silence.
	DefaultFloorDB = -100.0
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	mode        RampMode
	rampSeconds float64
	floorDB     float64
	gainDB      float64
}

func defaultGainConfig() gainConfig {
	return gainConfig{
		mode:        RampBlock,
		rampSeconds: defaultGainRampSeconds,
		floorDB:     DefaultFloorDB,
	}
}

// WithRampMode selects block or time based ramping.
func WithRampMode(mode RampMode) GainOption {
	return func(cfg *gainConfig) error {
		if mode != RampBlock && mode != RampTime {
			return fmt.Errorf("gain ramp mode is unknown: %d", int(mode))
		}

		cfg.mode = mode

		return nil
	}
}

// WithRampSeconds sets the ramp time used by RampTime.
func WithRampSeconds(seconds float64) GainOption {
	return func(cfg *gainConfig) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("gain ramp time must be >= 0 and finite: %f", seconds)
		}

		cfg.rampSeconds = seconds

		return nil
	}
}

// WithFloorDB sets the silence threshold.
func WithFloorDB(floorDB float64) GainOption {
	return func(cfg *gainConfig) error {
		if math.IsNaN(floorDB) || floorDB > 0 {
			return fmt.Errorf("gain floor must be <= 0 dB: %f", floorDB)
		}

		cfg.floorDB = floorDB

		return nil
	}
}

// WithGainDB sets the initial gain without a ramp.
func WithGainDB(db float64) GainOption {
	return func(cfg *gainConfig) error {
		if math.IsNaN(db) {
			return fmt.Errorf("gain must not be NaN")
		}

		cfg.gainDB = db

		return nil
	}
}

// Gain applies a decibel gain to one or more channels without steps when
// the level changes. All channels passed to one ProcessBlock call share the
// same gain curve.
type Gain struct {
	sampleRate float64
	mode       RampMode
	floorDB    float64
	rampSec    float64

	targetDB float64
	target   float64
	applied  float64

	ramp smooth.Linear
}

// NewGain creates a gain stage at 0 dB unless WithGainDB says otherwise.
func NewGain(sampleRate float64, opts ...GainOption) (*Gain, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("gain sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultGainConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	g := &Gain{
		sampleRate: sampleRate,
		mode:       cfg.mode,
		floorDB:    cfg.floorDB,
		rampSec:    cfg.rampSeconds,
	}
	g.SetGainDB(cfg.gainDB)
	g.Reset()

	return g, nil
}

// SetGainDB sets the target gain. Values at or below the floor mute.
func (g *Gain) SetGainDB(db float64) {
	if math.IsNaN(db) {
		db = 0
	}

	g.targetDB = db
	g.target = core.DBToGain(db, g.floorDB)

	if g.mode == RampTime {
		g.ramp.SetTarget(g.target)
	}
}

// GainDB returns the target gain in dB.
func (g *Gain) GainDB() float64 { return g.targetDB }

// Linear returns the linear gain reached at the end of the last block.
func (g *Gain) Linear() float64 {
	if g.mode == RampTime {
		return g.ramp.Current()
	}

	return g.applied
}

// Mode returns the ramp mode.
func (g *Gain) Mode() RampMode { return g.mode }

// ProcessBlock scales every buffer in place. Buffers shorter than the first
// are processed up to their own length.
func (g *Gain) ProcessBlock(bufs ...[]float64) {
	n := core.BlockLen(bufs)
	if n == 0 {
		return
	}

	if g.mode == RampTime {
		g.processTimed(bufs, n)
		return
	}

	if g.target == g.applied {
		for _, buf := range bufs {
			vecmath.ScaleBlock(buf[:n], buf[:n], g.applied)
		}

		return
	}

	step := (g.target - g.applied) / float64(n)
	for _, buf := range bufs {
		for i := range buf[:n] {
			buf[i] *= g.applied + step*float64(i+1)
		}
	}

	g.applied = g.target
}

func (g *Gain) processTimed(bufs [][]float64, n int) {
	if !g.ramp.IsSmoothing() {
		v := g.ramp.Current()
		for _, buf := range bufs {
			vecmath.ScaleBlock(buf[:n], buf[:n], v)
		}

		return
	}

	for i := range n {
		v := g.ramp.Next()
		for _, buf := range bufs {
			buf[i] *= v
		}
	}

	g.applied = g.ramp.Current()
}

// SetSampleRate re-times the ramp and jumps to the target.
func (g *Gain) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("gain sample rate must be > 0 and finite: %f", sampleRate)
	}

	g.sampleRate = sampleRate
	g.Reset()

	return nil
}

// Reset jumps to the target gain, dropping any ramp in progress.
func (g *Gain) Reset() {
	g.applied = g.target
	g.ramp.Reset(g.sampleRate, g.rampSec)
	g.ramp.SetCurrentAndTarget(g.target)
}
