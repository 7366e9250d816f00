package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec is returned when a ProcessSpec cannot drive a processor.
var ErrInvalidSpec = errors.New("core: invalid process spec")

// ProcessSpec describes the stream a processor is prepared for.
type ProcessSpec struct {
	SampleRate   float64
	MaxBlockSize int
	NumChannels  int
}

// SpecOption mutates a ProcessSpec.
type SpecOption func(*ProcessSpec)

// DefaultProcessSpec returns a stereo 48 kHz spec with 1024-sample blocks.
func DefaultProcessSpec() ProcessSpec {
	return ProcessSpec{
		SampleRate:   48000,
		MaxBlockSize: 1024,
		NumChannels:  2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) SpecOption {
	return func(s *ProcessSpec) {
		if sampleRate > 0 {
			s.SampleRate = sampleRate
		}
	}
}

// WithMaxBlockSize sets the largest block Process will be handed.
func WithMaxBlockSize(blockSize int) SpecOption {
	return func(s *ProcessSpec) {
		if blockSize > 0 {
			s.MaxBlockSize = blockSize
		}
	}
}

// WithNumChannels sets the channel count.
func WithNumChannels(n int) SpecOption {
	return func(s *ProcessSpec) {
		if n > 0 {
			s.NumChannels = n
		}
	}
}

// NewProcessSpec applies zero or more options to the default spec.
func NewProcessSpec(opts ...SpecOption) ProcessSpec {
	s := DefaultProcessSpec()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	return s
}

// Validate reports why s is unusable, wrapping ErrInvalidSpec.
func (s ProcessSpec) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidSpec, s.SampleRate)
	}

	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: max block size must be > 0: %d", ErrInvalidSpec, s.MaxBlockSize)
	}

	if s.NumChannels <= 0 {
		return fmt.Errorf("%w: channel count must be > 0: %d", ErrInvalidSpec, s.NumChannels)
	}

	return nil
}
