package utility

import (
	"fmt"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/effects/level"
	"github.com/cwbudde/algo-utility/dsp/utility/param"
)

// Option mutates processor construction parameters.
type Option func(*processorConfig) error

type processorConfig struct {
	store     *param.Store
	stateOpts []StateOption
}

// WithStore shares an existing parameter store, for example one also
// written by an editor.
func WithStore(store *param.Store) Option {
	return func(cfg *processorConfig) error {
		if store == nil {
			return fmt.Errorf("utility store must not be nil")
		}

		cfg.store = store

		return nil
	}
}

// WithRampMode selects block or time ramping for gain changes.
func WithRampMode(mode level.RampMode) Option {
	return func(cfg *processorConfig) error {
		if mode != level.RampBlock && mode != level.RampTime {
			return fmt.Errorf("utility gain ramp mode is unknown: %d", int(mode))
		}

		cfg.stateOpts = append(cfg.stateOpts, WithGainRampMode(mode))

		return nil
	}
}

// WithSmoothing sets the ramp time of the width and balance controls.
func WithSmoothing(seconds float64) Option {
	return func(cfg *processorConfig) error {
		if !(seconds >= 0) {
			return fmt.Errorf("utility smoothing time must be >= 0: %f", seconds)
		}

		cfg.stateOpts = append(cfg.stateOpts, WithSmoothingSeconds(seconds))

		return nil
	}
}

// Processor reads its controls from a param.Store once per block and runs
// them through a State. Parameters may be written from any goroutine;
// Prepare and Process must be called from the audio goroutine only.
type Processor struct {
	store     *param.Store
	stateOpts []StateOption
	state     State
}

// NewProcessor creates an unprepared processor with a fresh store unless
// WithStore is given.
func NewProcessor(opts ...Option) (*Processor, error) {
	var cfg processorConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.store == nil {
		cfg.store = param.NewStore()
	}

	return &Processor{store: cfg.store, stateOpts: cfg.stateOpts}, nil
}

// Params returns the parameter store.
func (p *Processor) Params() *param.Store { return p.store }

// Prepare sizes the processor for a stream. The ramps start at the
// parameters' current values.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize, numChannels int) error {
	spec := core.ProcessSpec{
		SampleRate:   sampleRate,
		MaxBlockSize: maxBlockSize,
		NumChannels:  numChannels,
	}

	opts := append(p.stateOpts[:len(p.stateOpts):len(p.stateOpts)],
		WithInitialSnapshot(p.Snapshot()))

	return Prepare(&p.state, spec, opts...)
}

// Snapshot reads the current parameters.
func (p *Processor) Snapshot() Snapshot {
	return SnapshotFromValues(p.store.Snapshot())
}

// Process runs one block in place. It does not allocate.
func (p *Processor) Process(buf [][]float64) {
	Process(&p.state, buf, p.Snapshot())
}

// State exposes the underlying DSP state.
func (p *Processor) State() *State { return &p.state }
