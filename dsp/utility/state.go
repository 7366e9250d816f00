package utility

import (
	"fmt"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/effects/level"
	"github.com/cwbudde/algo-utility/dsp/effects/spatial"
)

const (
	defaultSmoothingSeconds = 0.05
	defaultGainRampSeconds  = 0.005
)

// StateOption mutates how Prepare builds a State.
type StateOption func(*stateConfig) error

type stateConfig struct {
	gainMode      level.RampMode
	gainRampSec   float64
	smoothingSec  float64
	initialParams Snapshot
}

func defaultStateConfig() stateConfig {
	return stateConfig{
		gainMode:      level.RampBlock,
		gainRampSec:   defaultGainRampSeconds,
		smoothingSec:  defaultSmoothingSeconds,
		initialParams: DefaultSnapshot(),
	}
}

// WithGainRampMode selects block or time ramping for gain changes.
func WithGainRampMode(mode level.RampMode) StateOption {
	return func(cfg *stateConfig) error {
		if mode != level.RampBlock && mode != level.RampTime {
			return fmt.Errorf("utility gain ramp mode is unknown: %d", int(mode))
		}

		cfg.gainMode = mode

		return nil
	}
}

// WithGainRampSeconds sets the ramp time used by level.RampTime.
func WithGainRampSeconds(seconds float64) StateOption {
	return func(cfg *stateConfig) error {
		if !(seconds >= 0) {
			return fmt.Errorf("utility gain ramp time must be >= 0: %f", seconds)
		}

		cfg.gainRampSec = seconds

		return nil
	}
}

// WithSmoothingSeconds sets the ramp time of the width and balance controls.
func WithSmoothingSeconds(seconds float64) StateOption {
	return func(cfg *stateConfig) error {
		if !(seconds >= 0) {
			return fmt.Errorf("utility smoothing time must be >= 0: %f", seconds)
		}

		cfg.smoothingSec = seconds

		return nil
	}
}

// WithInitialSnapshot sets the values the ramps start from after Prepare,
// so the first block does not glide from the defaults.
func WithInitialSnapshot(s Snapshot) StateOption {
	return func(cfg *stateConfig) error {
		cfg.initialParams = s.Sanitize()
		return nil
	}
}

// State owns every piece of memory the pipeline carries between blocks.
// The zero value is unprepared; Process on it is a no-op.
type State struct {
	spec     core.ProcessSpec
	cfg      stateConfig
	prepared bool

	field    *spatial.StereoField
	bassMono *spatial.BassMono
	gain     *level.Gain
	panner   *spatial.Panner

	bassMonoWasActive bool

	pair [2][]float64
}

// Spec returns the ProcessSpec passed to the last successful Prepare.
func (st *State) Spec() core.ProcessSpec { return st.spec }

// Prepared reports whether Prepare succeeded.
func (st *State) Prepared() bool { return st.prepared }

// Prepare validates spec and rebuilds every stage from scratch. It
// allocates and must not run on the audio thread. Calling it twice with the
// same arguments leaves identical state.
func Prepare(st *State, spec core.ProcessSpec, opts ...StateOption) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("utility: prepare: %w", err)
	}

	cfg := defaultStateConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return err
		}
	}

	start := cfg.initialParams

	mode := spatial.FieldModeWidth
	if start.StereoMode == StereoModeMidSide {
		mode = spatial.FieldModeMidSide
	}

	field, err := spatial.NewStereoField(spec.SampleRate,
		spatial.WithFieldMode(mode),
		spatial.WithFieldWidth(start.StereoWidth),
		spatial.WithFieldBalance(start.StereoMidSide),
		spatial.WithFieldSmoothing(cfg.smoothingSec),
	)
	if err != nil {
		return fmt.Errorf("utility: prepare: %w", err)
	}

	bassMono, err := spatial.NewBassMono(spec.SampleRate, spec.MaxBlockSize,
		spatial.WithBassMonoFreq(start.BassMonoFreq),
	)
	if err != nil {
		return fmt.Errorf("utility: prepare: %w", err)
	}

	gain, err := level.NewGain(spec.SampleRate,
		level.WithRampMode(cfg.gainMode),
		level.WithRampSeconds(cfg.gainRampSec),
		level.WithGainDB(start.GainDB),
	)
	if err != nil {
		return fmt.Errorf("utility: prepare: %w", err)
	}

	panner, err := spatial.NewPanner(spatial.WithPan(start.Pan / 50))
	if err != nil {
		return fmt.Errorf("utility: prepare: %w", err)
	}

	*st = State{
		spec:     spec,
		cfg:      cfg,
		prepared: true,
		field:    field,
		bassMono: bassMono,
		gain:     gain,
		panner:   panner,
	}

	return nil
}

// Process runs one block through the pipeline in place. buf holds one slice
// per channel; channels beyond the second are cleared. A single channel gets
// phase and gain only. Blocks longer than the prepared maximum are accepted.
// When the first two channels differ in length, samples past the shorter one
// are cleared. Process does not allocate.
func Process(st *State, buf [][]float64, snap Snapshot) {
	if !st.prepared || len(buf) == 0 {
		return
	}

	snap = snap.Sanitize()

	if len(buf) == 1 {
		level.ApplyPhase(buf[0], snap.InvertPhaseL)
		st.gain.SetGainDB(snap.GainDB)
		st.pair[0] = buf[0]
		st.gain.ProcessBlock(st.pair[:1]...)

		return
	}

	core.ZeroChannels(buf[2:])

	n := core.BlockLen(buf[:2])
	left, right := buf[0][:n], buf[1][:n]
	clear(buf[0][n:])
	clear(buf[1][n:])

	level.ApplyPhase(left, snap.InvertPhaseL)
	level.ApplyPhase(right, snap.InvertPhaseR)

	if !snap.Mono {
		st.processField(left, right, snap)
	} else {
		level.MonoSum(left, right)
	}

	st.processBassMono(left, right, snap)

	st.gain.SetGainDB(snap.GainDB)
	st.pair[0], st.pair[1] = left, right
	st.gain.ProcessBlock(st.pair[:]...)

	st.panner.SetPan(snap.Pan / 50)
	_ = st.panner.ProcessStereoInPlace(left, right)
}

func (st *State) processField(left, right []float64, snap Snapshot) {
	if snap.StereoMode == StereoModeMidSide {
		st.field.SetMode(spatial.FieldModeMidSide)
	} else {
		st.field.SetMode(spatial.FieldModeWidth)
	}

	st.field.SetWidth(snap.StereoWidth)
	st.field.SetBalance(snap.StereoMidSide)
	_ = st.field.ProcessStereoInPlace(left, right)
}

func (st *State) processBassMono(left, right []float64, snap Snapshot) {
	active := snap.BassMonoActive()
	if !active {
		st.bassMonoWasActive = false
		return
	}

	// Filter memory from an earlier active stretch no longer matches the
	// signal.
	if !st.bassMonoWasActive {
		st.bassMono.Reset()
		st.bassMonoWasActive = true
	}

	st.bassMono.SetFreq(snap.BassMonoFreq)
	st.bassMono.SetMonoSum(snap.BassMono)
	st.bassMono.SetListening(snap.BassMonoListening)
	_ = st.bassMono.ProcessStereoInPlace(left, right)
}
