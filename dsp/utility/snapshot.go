package utility

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/utility/param"
)

// StereoMode selects the stereo field transform.
type StereoMode int

const (
	// StereoModeWidth scales the side signal by StereoWidth percent.
	StereoModeWidth StereoMode = iota
	// StereoModeMidSide crossfades mid and side by StereoMidSide.
	StereoModeMidSide
)

func (m StereoMode) String() string {
	switch m {
	case StereoModeWidth:
		return "Width"
	case StereoModeMidSide:
		return "Mid/Side"
	default:
		return fmt.Sprintf("StereoMode(%d)", int(m))
	}
}

// Snapshot is the set of control values applied to one block.
type Snapshot struct {
	GainDB       float64
	InvertPhaseL bool
	InvertPhaseR bool
	Mono         bool
	// Pan is -50 (left) .. 50 (right).
	Pan        float64
	StereoMode StereoMode
	// StereoWidth is 0..400 percent, 100 leaves the image unchanged.
	StereoWidth float64
	// StereoMidSide is -100 (mid only) .. 100 (side only).
	StereoMidSide     float64
	BassMono          bool
	BassMonoFreq      float64
	BassMonoListening bool
}

// DefaultSnapshot returns the settings under which Process leaves audio
// unchanged.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		StereoMode:   StereoModeWidth,
		StereoWidth:  100,
		BassMonoFreq: 120,
	}
}

// SnapshotFromValues converts a store snapshot.
func SnapshotFromValues(v param.Values) Snapshot {
	mode := StereoModeWidth
	if int(v.Get(param.StereoMode)) == param.StereoModeMidSide {
		mode = StereoModeMidSide
	}

	return Snapshot{
		GainDB:            v.Get(param.Gain),
		InvertPhaseL:      v.Bool(param.InvertPhaseL),
		InvertPhaseR:      v.Bool(param.InvertPhaseR),
		Mono:              v.Bool(param.Mono),
		Pan:               v.Get(param.Pan),
		StereoMode:        mode,
		StereoWidth:       v.Get(param.StereoWidth),
		StereoMidSide:     v.Get(param.StereoMidSide),
		BassMono:          v.Bool(param.BassMono),
		BassMonoFreq:      v.Get(param.BassMonoFrequency),
		BassMonoListening: v.Bool(param.BassMonoListening),
	}
}

// Sanitize returns s with every value clamped to its parameter range and
// NaN replaced by the default.
func (s Snapshot) Sanitize() Snapshot {
	s.GainDB = sanitize(param.Gain, s.GainDB)
	s.Pan = sanitize(param.Pan, s.Pan)
	s.StereoWidth = sanitize(param.StereoWidth, s.StereoWidth)
	s.StereoMidSide = sanitize(param.StereoMidSide, s.StereoMidSide)
	s.BassMonoFreq = sanitize(param.BassMonoFrequency, s.BassMonoFreq)

	if s.StereoMode != StereoModeMidSide {
		s.StereoMode = StereoModeWidth
	}

	return s
}

func sanitize(id param.ID, v float64) float64 {
	d := id.Definition()
	if math.IsNaN(v) {
		return d.Default
	}

	return core.Clamp(v, d.Range.Min, d.Range.Max)
}

// BassMonoActive reports whether the crossover stage runs for s.
func (s Snapshot) BassMonoActive() bool {
	return (s.BassMono && !s.Mono) || s.BassMonoListening
}
