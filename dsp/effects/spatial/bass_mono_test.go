package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-utility/dsp/filter/crossover"
	"github.com/cwbudde/algo-utility/internal/testutil"
)

// bandEnergy splits x at freq with a fresh LR4 and returns the energy of
// each band, skipping the first skip samples.
//
// The analysis split sits an octave away from the stage cutoff so the
// crossover skirts do not dominate the measurement.
func bandEnergy(t *testing.T, x []float64, freq, sr float64, skip int) (lo, hi float64) {
	t.Helper()

	xo, err := crossover.New(freq, 4, sr)
	require.NoError(t, err)

	l := make([]float64, len(x))
	h := make([]float64, len(x))
	xo.ProcessBlock(x, l, h)

	return testutil.Energy(l[skip:]), testutil.Energy(h[skip:])
}

func TestBassMonoFoldsOnlyLowEnd(t *testing.T) {
	const (
		sr   = 48000.0
		n    = 1 << 15
		freq = 200.0
	)

	b, err := NewBassMono(sr, 512, WithBassMonoFreq(freq))
	require.NoError(t, err)

	l, r := testutil.AntiphaseNoise(11, 0.5, n)
	inLo, _ := bandEnergy(t, l, freq/2, sr, 2048)
	_, inHi := bandEnergy(t, l, freq*2, sr, 2048)

	require.NoError(t, b.ProcessStereoInPlace(l, r))

	outLo, _ := bandEnergy(t, l, freq/2, sr, 2048)
	_, outHi := bandEnergy(t, l, freq*2, sr, 2048)

	// Antiphase lows cancel in the mono fold before recombination.
	assert.Less(t, outLo, inLo*0.02, "low band energy should collapse")
	// Highs are untouched apart from the crossover's allpass phase.
	assert.InDelta(t, 1, outHi/inHi, 0.15)

	// What is left is the high band, still exactly out of phase.
	for i := range l {
		require.InDeltaf(t, -l[i], r[i], 1e-12, "sample %d", i)
	}
}

func TestBassMonoOutputsIdenticalLows(t *testing.T) {
	b, err := NewBassMono(48000, 256)
	require.NoError(t, err)

	// Pure 40 Hz content on the left only ends up centred.
	l := testutil.DeterministicSine(40, 48000, 1, 48000)
	r := make([]float64, len(l))
	require.NoError(t, b.ProcessStereoInPlace(l, r))

	for i := 24000; i < len(l); i++ {
		require.InDeltaf(t, l[i], r[i], 0.02, "sample %d", i)
	}
}

func TestBassMonoWithoutSumIsAllpass(t *testing.T) {
	b, err := NewBassMono(48000, 128)
	require.NoError(t, err)

	b.SetMonoSum(false)
	assert.False(t, b.MonoSum())

	l, r := testutil.StereoNoise(5, 1, 8192)
	want := testutil.Clone(l, r)

	ref, err := crossover.NewStereo(120, 4, 48000)
	require.NoError(t, err)

	loL := make([]float64, len(l))
	loR := make([]float64, len(l))
	hiL := make([]float64, len(l))
	hiR := make([]float64, len(l))
	ref.ProcessBlock(want[0], want[1], loL, loR, hiL, hiR)

	require.NoError(t, b.ProcessStereoInPlace(l, r))

	for i := range l {
		require.InDelta(t, loL[i]+hiL[i], l[i], 1e-12)
		require.InDelta(t, loR[i]+hiR[i], r[i], 1e-12)
	}
}

func TestBassMonoListeningOutputsLowBand(t *testing.T) {
	b, err := NewBassMono(48000, 64, WithBassMonoListening(true), WithBassMonoFreq(150))
	require.NoError(t, err)
	assert.True(t, b.Listening())

	l := testutil.DeterministicSine(5000, 48000, 1, 9600)
	r := testutil.DeterministicSine(5000, 48000, 1, 9600)
	require.NoError(t, b.ProcessStereoInPlace(l, r))

	// 5 kHz is more than five octaves above the cutoff.
	for i := 4800; i < len(l); i++ {
		require.Less(t, math.Abs(l[i]), 1e-3)
	}

	b.SetListening(false)
	assert.False(t, b.Listening())
}

func TestBassMonoChunksLongBlocks(t *testing.T) {
	short, err := NewBassMono(48000, 32)
	require.NoError(t, err)

	long, err := NewBassMono(48000, 4096)
	require.NoError(t, err)

	l1, r1 := testutil.StereoNoise(9, 1, 1000)
	l2, r2 := testutil.StereoNoise(9, 1, 1000)

	require.NoError(t, short.ProcessStereoInPlace(l1, r1))
	require.NoError(t, long.ProcessStereoInPlace(l2, r2))

	testutil.RequireSliceNearlyEqual(t, l1, l2, 1e-12)
	testutil.RequireSliceNearlyEqual(t, r1, r2, 1e-12)
}

func TestBassMonoSetFreqClamps(t *testing.T) {
	b, err := NewBassMono(48000, 64)
	require.NoError(t, err)
	assert.Equal(t, 120.0, b.Freq())

	b.SetFreq(90000)
	assert.Equal(t, 12000.0, b.Freq())

	b.SetFreq(-3)
	assert.Equal(t, crossover.MinFreq, b.Freq())

	b.SetFreq(math.NaN())
	assert.Equal(t, crossover.MinFreq, b.Freq())
}

func TestBassMonoNoAlloc(t *testing.T) {
	b, err := NewBassMono(48000, 256)
	require.NoError(t, err)

	l, r := testutil.StereoNoise(1, 1, 256)
	f := 100.0

	allocs := testing.AllocsPerRun(50, func() {
		f++
		b.SetFreq(f)
		_ = b.ProcessStereoInPlace(l, r)
	})
	assert.Zero(t, allocs)
}

func TestNewBassMonoValidation(t *testing.T) {
	_, err := NewBassMono(0, 64)
	assert.Error(t, err)

	_, err = NewBassMono(48000, 0)
	assert.Error(t, err)

	_, err = NewBassMono(48000, 64, WithBassMonoFreq(-1))
	assert.Error(t, err)

	b, err := NewBassMono(48000, 64)
	require.NoError(t, err)
	assert.Error(t, b.ProcessStereoInPlace(make([]float64, 2), make([]float64, 3)))
	assert.Equal(t, 64, b.MaxBlockSize())
	assert.Equal(t, 48000.0, b.SampleRate())
	b.Reset()
}
