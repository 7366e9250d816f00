package crossover

import "fmt"

// Stereo runs one Crossover per channel with a shared cutoff.
type Stereo struct {
	left  *Crossover
	right *Crossover
}

// NewStereo builds a matched left/right crossover pair.
func NewStereo(freq float64, order int, sampleRate float64) (*Stereo, error) {
	l, err := New(freq, order, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("crossover: left: %w", err)
	}

	r, err := New(freq, order, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("crossover: right: %w", err)
	}

	return &Stereo{left: l, right: r}, nil
}

// SetFreq retunes both channels, keeping their state.
func (s *Stereo) SetFreq(freq float64) {
	s.left.SetFreq(freq)
	s.right.SetFreq(freq)
}

// Freq returns the current (clamped) crossover frequency.
func (s *Stereo) Freq() float64 { return s.left.Freq() }

// ProcessBlock splits left and right into their low and high bands.
func (s *Stereo) ProcessBlock(left, right, loL, loR, hiL, hiR []float64) {
	s.left.ProcessBlock(left, loL, hiL)
	s.right.ProcessBlock(right, loR, hiR)
}

// Left returns the left-channel crossover.
func (s *Stereo) Left() *Crossover { return s.left }

// Right returns the right-channel crossover.
func (s *Stereo) Right() *Crossover { return s.right }

// Reset clears both channels.
func (s *Stereo) Reset() {
	s.left.Reset()
	s.right.Reset()
}
