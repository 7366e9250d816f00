package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidAnalyzer is returned for unusable analyzer settings.
var ErrInvalidAnalyzer = errors.New("spectrum: invalid analyzer")

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig) error

type analyzerConfig struct {
	hann bool
}

// WithHann selects a periodic Hann window for PowerSpectrum and BandPower.
// This is the default.
func WithHann() AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		cfg.hann = true
		return nil
	}
}

// WithRectangular disables windowing.
func WithRectangular() AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		cfg.hann = false
		return nil
	}
}

// Analyzer computes power spectra of fixed-size real frames. It keeps its
// FFT plan and scratch buffers, so repeated analysis does not allocate.
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	plan       *algofft.Plan[complex128]
	size       int
	sampleRate float64
	window     []float64

	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
	mag   []float64
}

// NewAnalyzer creates an analyzer for frames of size samples. size must be a
// power of two of at least 2.
func NewAnalyzer(size int, sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: size must be a power of two >= 2: %d", ErrInvalidAnalyzer, size)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidAnalyzer, sampleRate)
	}

	cfg := analyzerConfig{hann: true}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	half := size/2 + 1
	a := &Analyzer{
		plan:       plan,
		size:       size,
		sampleRate: sampleRate,
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, half),
		im:         make([]float64, half),
		power:      make([]float64, half),
		mag:        make([]float64, half),
	}

	if cfg.hann {
		a.window = make([]float64, size)
		for i := range a.window {
			a.window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
		}
	}

	return a, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of non-negative frequency bins, Size/2+1.
func (a *Analyzer) Bins() int { return len(a.power) }

// SampleRate returns the sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// BinFreq returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFreq(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.size)
}

// Bin returns the bin nearest to freq, clamped to [0, Bins()-1].
func (a *Analyzer) Bin(freq float64) int {
	k := int(math.Round(freq * float64(a.size) / a.sampleRate))

	return max(0, min(k, len(a.power)-1))
}

// PowerSpectrum transforms one frame and returns |X[k]|^2 for the
// non-negative bins. Shorter frames are zero padded and longer ones are
// truncated. The result aliases internal storage and is valid until the
// next call.
func (a *Analyzer) PowerSpectrum(frame []float64) ([]float64, error) {
	if err := a.transform(frame, a.window); err != nil {
		return nil, err
	}

	vecmath.Power(a.power, a.re, a.im)

	return a.power, nil
}

// BandPower splits x into consecutive frames and returns the mean power of
// the bins whose centre lies in [loHz, hiHz). A trailing partial frame is
// ignored unless x is shorter than one frame.
func (a *Analyzer) BandPower(x []float64, loHz, hiHz float64) (float64, error) {
	if !(hiHz > loHz) {
		return 0, fmt.Errorf("%w: band must satisfy lo < hi: %f, %f", ErrInvalidAnalyzer, loHz, hiHz)
	}

	frames := len(x) / a.size
	if frames == 0 {
		frames = 1
	}

	lo := int(math.Ceil(loHz * float64(a.size) / a.sampleRate))
	hi := int(math.Ceil(hiHz*float64(a.size)/a.sampleRate)) - 1
	lo = max(lo, 0)
	hi = min(hi, len(a.power)-1)

	total := 0.0

	for f := range frames {
		end := min(len(x), (f+1)*a.size)

		p, err := a.PowerSpectrum(x[f*a.size : end])
		if err != nil {
			return 0, err
		}

		for k := lo; k <= hi; k++ {
			total += p[k]
		}
	}

	return total / float64(frames), nil
}

// Response returns the magnitude |H[k]| of an impulse response over the
// non-negative bins. No window is applied. The result aliases internal
// storage and is valid until the next call.
func (a *Analyzer) Response(ir []float64) ([]float64, error) {
	if err := a.transform(ir, nil); err != nil {
		return nil, err
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	return a.mag, nil
}

func (a *Analyzer) transform(frame, window []float64) error {
	n := min(len(frame), a.size)

	for i := range n {
		x := frame[i]
		if window != nil {
			x *= window[i]
		}

		a.in[i] = complex(x, 0)
	}

	clear(a.in[n:])

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	return nil
}
