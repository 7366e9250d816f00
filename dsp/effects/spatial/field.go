package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/smooth"
)

// FieldMode selects how StereoField rescales mid and side.
type FieldMode int

const (
	// FieldModeWidth keeps mid at unity and scales side by width/100.
	FieldModeWidth FieldMode = iota
	// FieldModeMidSide crossfades between mid and side with loudness
	// compensation.
	FieldModeMidSide
)

func (m FieldMode) String() string {
	switch m {
	case FieldModeWidth:
		return "Width"
	case FieldModeMidSide:
		return "Mid/Side"
	default:
		return fmt.Sprintf("FieldMode(%d)", int(m))
	}
}

const (
	defaultFieldWidth     = 100.0
	defaultFieldBalance   = 0.0
	defaultFieldSmoothing = 0.05

	// MinFieldWidth and MaxFieldWidth bound the width control in percent.
	MinFieldWidth = 0.0
	MaxFieldWidth = 400.0

	// MinFieldBalance and MaxFieldBalance bound the mid/side balance.
	MinFieldBalance = -100.0
	MaxFieldBalance = 100.0
)

// StereoFieldOption mutates stereo field construction parameters.
type StereoFieldOption func(*stereoFieldConfig) error

type stereoFieldConfig struct {
	mode      FieldMode
	width     float64
	balance   float64
	smoothing float64
}

func defaultStereoFieldConfig() stereoFieldConfig {
	return stereoFieldConfig{
		mode:      FieldModeWidth,
		width:     defaultFieldWidth,
		balance:   defaultFieldBalance,
		smoothing: defaultFieldSmoothing,
	}
}

// WithFieldMode sets the initial mode.
func WithFieldMode(mode FieldMode) StereoFieldOption {
	return func(cfg *stereoFieldConfig) error {
		if mode != FieldModeWidth && mode != FieldModeMidSide {
			return fmt.Errorf("stereo field mode is unknown: %d", int(mode))
		}

		cfg.mode = mode

		return nil
	}
}

// WithFieldWidth sets the initial width in percent (0..400, 100 = unchanged).
func WithFieldWidth(width float64) StereoFieldOption {
	return func(cfg *stereoFieldConfig) error {
		if width < MinFieldWidth || width > MaxFieldWidth || math.IsNaN(width) {
			return fmt.Errorf("stereo field width must be in [%g, %g]: %f",
				MinFieldWidth, MaxFieldWidth, width)
		}

		cfg.width = width

		return nil
	}
}

// WithFieldBalance sets the initial mid/side balance (-100..100).
func WithFieldBalance(balance float64) StereoFieldOption {
	return func(cfg *stereoFieldConfig) error {
		if balance < MinFieldBalance || balance > MaxFieldBalance || math.IsNaN(balance) {
			return fmt.Errorf("stereo field balance must be in [%g, %g]: %f",
				MinFieldBalance, MaxFieldBalance, balance)
		}

		cfg.balance = balance

		return nil
	}
}

// WithFieldSmoothing sets the ramp time in seconds applied to width and
// balance changes. Zero disables smoothing.
func WithFieldSmoothing(seconds float64) StereoFieldOption {
	return func(cfg *stereoFieldConfig) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("stereo field smoothing must be >= 0 and finite: %f", seconds)
		}

		cfg.smoothing = seconds

		return nil
	}
}

// WidthGains returns the mid and side scale factors of Width mode.
// Mid is fixed at 0.5; side follows width/100.
func WidthGains(width float64) (mid, side float64) {
	return 0.5, 0.5 * width / 100
}

// MidSideGains returns the mid and side scale factors of Mid/Side mode for
// a balance in -100..100. The divisor |b|+1 holds loudness roughly constant
// across the sweep.
func MidSideGains(balance float64) (mid, side float64) {
	b := balance / 100
	n := (b + 1) * 0.5
	d := math.Abs(b) + 1

	return (1 - n) / d, n / d
}

// StereoField rescales the mid (L+R) and side (R-L) components of a stereo
// signal and decodes back to left/right as L = mid-side, R = mid+side.
//
// Width and balance are ramped per sample so automation does not step.
// This processor is stereo, real-time safe, and not thread-safe.
type StereoField struct {
	sampleRate float64
	smoothing  float64
	mode       FieldMode

	width   smooth.Linear
	balance smooth.Linear
}

// NewStereoField creates a stereo field transform with identity defaults
// (Width mode, 100%) and optional overrides.
func NewStereoField(sampleRate float64, opts ...StereoFieldOption) (*StereoField, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("stereo field sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultStereoFieldConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	f := &StereoField{
		sampleRate: sampleRate,
		smoothing:  cfg.smoothing,
		mode:       cfg.mode,
	}

	f.width.Reset(sampleRate, cfg.smoothing)
	f.width.SetCurrentAndTarget(cfg.width)
	f.balance.Reset(sampleRate, cfg.smoothing)
	f.balance.SetCurrentAndTarget(cfg.balance)

	return f, nil
}

// ProcessStereo transforms one sample pair and advances both ramps.
func (f *StereoField) ProcessStereo(left, right float64) (float64, float64) {
	width := f.width.Next()
	balance := f.balance.Next()

	var midGain, sideGain float64
	if f.mode == FieldModeMidSide {
		midGain, sideGain = MidSideGains(balance)
	} else {
		midGain, sideGain = WidthGains(width)
	}

	mid := (left + right) * midGain
	side := (right - left) * sideGain

	return mid - side, mid + side
}

// ProcessStereoInPlace transforms paired left/right buffers in place.
// Both buffers must have the same length.
func (f *StereoField) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("stereo field: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	if !f.width.IsSmoothing() && !f.balance.IsSmoothing() {
		f.processStatic(left, right)
		return nil
	}

	for i := range left {
		left[i], right[i] = f.ProcessStereo(left[i], right[i])
	}

	return nil
}

func (f *StereoField) processStatic(left, right []float64) {
	var midGain, sideGain float64
	if f.mode == FieldModeMidSide {
		midGain, sideGain = MidSideGains(f.balance.Current())
	} else {
		midGain, sideGain = WidthGains(f.width.Current())
	}

	right = right[:len(left)]
	for i := range left {
		mid := (left[i] + right[i]) * midGain
		side := (right[i] - left[i]) * sideGain
		left[i] = mid - side
		right[i] = mid + side
	}
}

// Mode returns the active mode.
func (f *StereoField) Mode() FieldMode { return f.mode }

// SetMode switches modes immediately.
func (f *StereoField) SetMode(mode FieldMode) {
	if mode == FieldModeMidSide {
		f.mode = FieldModeMidSide
		return
	}

	f.mode = FieldModeWidth
}

// SetWidth sets the width target in percent, clamped to 0..400.
func (f *StereoField) SetWidth(width float64) {
	if math.IsNaN(width) {
		width = defaultFieldWidth
	}

	f.width.SetTarget(core.Clamp(width, MinFieldWidth, MaxFieldWidth))
}

// SetBalance sets the mid/side balance target, clamped to -100..100.
func (f *StereoField) SetBalance(balance float64) {
	if math.IsNaN(balance) {
		balance = defaultFieldBalance
	}

	f.balance.SetTarget(core.Clamp(balance, MinFieldBalance, MaxFieldBalance))
}

// Width returns the current (ramped) width.
func (f *StereoField) Width() float64 { return f.width.Current() }

// Balance returns the current (ramped) balance.
func (f *StereoField) Balance() float64 { return f.balance.Current() }

// SampleRate returns the sample rate in Hz.
func (f *StereoField) SampleRate() float64 { return f.sampleRate }

// SetSampleRate updates the sample rate and re-times the ramps.
func (f *StereoField) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("stereo field sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.Reset()

	return nil
}

// Reset snaps both ramps to their targets.
func (f *StereoField) Reset() {
	w, b := f.width.Target(), f.balance.Target()

	f.width.Reset(f.sampleRate, f.smoothing)
	f.width.SetCurrentAndTarget(w)
	f.balance.Reset(f.sampleRate, f.smoothing)
	f.balance.SetCurrentAndTarget(b)
}
