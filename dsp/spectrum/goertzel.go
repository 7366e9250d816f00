package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term over the samples fed since the last
// Reset. It is the cheap way to read the level of a known tone.
//
// Leakage occurs when the tone does not complete an integer number of
// cycles within the analysed block.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if !(frequency >= 0) || frequency > sampleRate/2 {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
	g.n = 0
}

// ProcessBlock accumulates a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff

	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2 over the accumulated samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X[k]|.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude returns the peak amplitude of a sinusoid at the target
// frequency, 2|X[k]|/N. At DC and Nyquist it is |X[k]|/N.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	scale := 2.0
	if g.frequency == 0 || g.frequency == g.sampleRate/2 {
		scale = 1
	}

	return scale * g.Magnitude() / float64(g.n)
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Samples returns the number of samples accumulated since Reset.
func (g *Goertzel) Samples() int { return g.n }

// ToneAmplitude returns the amplitude of the frequency component of input
// in one shot.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Amplitude(), nil
}
