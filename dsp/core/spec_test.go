package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewProcessSpec(t *testing.T) {
	s := NewProcessSpec(WithSampleRate(96000), WithMaxBlockSize(2048), WithNumChannels(1))
	if s.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", s.SampleRate)
	}

	if s.MaxBlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", s.MaxBlockSize)
	}

	if s.NumChannels != 1 {
		t.Fatalf("channels = %d, want 1", s.NumChannels)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	s := NewProcessSpec(WithSampleRate(0), WithMaxBlockSize(-1), WithNumChannels(0), nil)
	if s != DefaultProcessSpec() {
		t.Fatalf("spec = %#v, want %#v", s, DefaultProcessSpec())
	}
}

func TestProcessSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec ProcessSpec
		ok   bool
	}{
		{name: "default", spec: DefaultProcessSpec(), ok: true},
		{name: "zero rate", spec: ProcessSpec{SampleRate: 0, MaxBlockSize: 64, NumChannels: 2}},
		{name: "nan rate", spec: ProcessSpec{SampleRate: math.NaN(), MaxBlockSize: 64, NumChannels: 2}},
		{name: "inf rate", spec: ProcessSpec{SampleRate: math.Inf(1), MaxBlockSize: 64, NumChannels: 2}},
		{name: "zero block", spec: ProcessSpec{SampleRate: 44100, NumChannels: 2}},
		{name: "no channels", spec: ProcessSpec{SampleRate: 44100, MaxBlockSize: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !tt.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("err = %v, want ErrInvalidSpec", err)
			}
		})
	}
}
