package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-utility/dsp/filter/crossover"
)

const (
	defaultBassMonoFreq = 120.0

	// BassMonoOrder is the Linkwitz-Riley order of the bass split.
	BassMonoOrder = 4
)

// BassMonoOption mutates bass mono construction parameters.
type BassMonoOption func(*bassMonoConfig) error

type bassMonoConfig struct {
	freq      float64
	listening bool
	monoSum   bool
}

func defaultBassMonoConfig() bassMonoConfig {
	return bassMonoConfig{
		freq:    defaultBassMonoFreq,
		monoSum: true,
	}
}

// WithBassMonoFreq sets the initial crossover frequency in Hz.
func WithBassMonoFreq(freq float64) BassMonoOption {
	return func(cfg *bassMonoConfig) error {
		if !(freq > 0) || math.IsInf(freq, 0) {
			return fmt.Errorf("bass mono frequency must be > 0 and finite: %f", freq)
		}

		cfg.freq = freq

		return nil
	}
}

// WithBassMonoListening starts the stage in low-band solo mode.
func WithBassMonoListening(listening bool) BassMonoOption {
	return func(cfg *bassMonoConfig) error {
		cfg.listening = listening
		return nil
	}
}

// BassMono splits a stereo signal with a Linkwitz-Riley crossover, sums the
// low band to mono and recombines it with the untouched high band. In
// listening mode only the low band is output.
//
// Scratch buffers are sized at construction; longer blocks are processed
// in chunks. This processor is real-time safe and not thread-safe.
type BassMono struct {
	sampleRate   float64
	maxBlockSize int

	xo        *crossover.Stereo
	listening bool
	monoSum   bool

	loL, loR, hiL, hiR []float64
}

// NewBassMono creates a bass mono stage for blocks of up to maxBlockSize
// samples.
func NewBassMono(sampleRate float64, maxBlockSize int, opts ...BassMonoOption) (*BassMono, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("bass mono sample rate must be > 0 and finite: %f", sampleRate)
	}

	if maxBlockSize <= 0 {
		return nil, fmt.Errorf("bass mono block size must be > 0: %d", maxBlockSize)
	}

	cfg := defaultBassMonoConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	xo, err := crossover.NewStereo(crossover.ClampFreq(cfg.freq, sampleRate), BassMonoOrder, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("bass mono: %w", err)
	}

	return &BassMono{
		sampleRate:   sampleRate,
		maxBlockSize: maxBlockSize,
		xo:           xo,
		listening:    cfg.listening,
		monoSum:      cfg.monoSum,
		loL:          make([]float64, maxBlockSize),
		loR:          make([]float64, maxBlockSize),
		hiL:          make([]float64, maxBlockSize),
		hiR:          make([]float64, maxBlockSize),
	}, nil
}

// ProcessStereoInPlace runs the stage over paired left/right buffers.
// Both buffers must have the same length.
func (b *BassMono) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("bass mono: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	for start := 0; start < len(left); start += b.maxBlockSize {
		end := min(start+b.maxBlockSize, len(left))
		b.processChunk(left[start:end], right[start:end])
	}

	return nil
}

func (b *BassMono) processChunk(left, right []float64) {
	n := len(left)
	loL, loR := b.loL[:n], b.loR[:n]
	hiL, hiR := b.hiL[:n], b.hiR[:n]

	b.xo.ProcessBlock(left, right, loL, loR, hiL, hiR)

	if b.monoSum {
		vecmath.AddBlockInPlace(loL, loR)
		vecmath.ScaleBlock(loL, loL, 0.5)
		copy(loR, loL)
	}

	copy(left, loL)
	copy(right, loR)

	if b.listening {
		return
	}

	vecmath.AddBlockInPlace(left, hiL)
	vecmath.AddBlockInPlace(right, hiR)
}

// SetFreq moves the crossover without resetting filter state. The value is
// clamped to a safe range for the sample rate.
func (b *BassMono) SetFreq(freq float64) { b.xo.SetFreq(freq) }

// Freq returns the (clamped) crossover frequency in Hz.
func (b *BassMono) Freq() float64 { return b.xo.Freq() }

// SetListening toggles low-band solo output.
func (b *BassMono) SetListening(listening bool) { b.listening = listening }

// Listening reports whether only the low band is output.
func (b *BassMono) Listening() bool { return b.listening }

// SetMonoSum toggles summing of the low band. With it off the stage only
// splits and recombines, which is how listening mode auditions the low
// band without bass mono.
func (b *BassMono) SetMonoSum(monoSum bool) { b.monoSum = monoSum }

// MonoSum reports whether the low band is summed to mono.
func (b *BassMono) MonoSum() bool { return b.monoSum }

// MaxBlockSize returns the scratch size.
func (b *BassMono) MaxBlockSize() int { return b.maxBlockSize }

// SampleRate returns the sample rate in Hz.
func (b *BassMono) SampleRate() float64 { return b.sampleRate }

// Reset clears the crossover state.
func (b *BassMono) Reset() { b.xo.Reset() }
