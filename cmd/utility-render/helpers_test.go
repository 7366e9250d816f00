package main

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-utility/dsp/effects/level"
	"github.com/cwbudde/algo-utility/dsp/utility"
	"github.com/cwbudde/algo-utility/dsp/utility/param"
)

func TestRegisterAndApplyParams(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	values := registerParamFlags(fs)
	assert.Len(t, values, param.Count)

	require.NoError(t, fs.Parse([]string{
		"-gain", "-6 dB",
		"-pan", "20L",
		"-stereoMode", "Mid/Side",
		"-stereoMidSide", "40S",
		"-isBassMono", "on",
		"-bassMonoFrequency", "150 Hz",
	}))

	store := param.NewStore()
	require.NoError(t, applyParams(store, values))

	assert.Equal(t, -6.0, store.Load(param.Gain))
	assert.Equal(t, -20.0, store.Load(param.Pan))
	assert.Equal(t, float64(param.StereoModeMidSide), store.Load(param.StereoMode))
	assert.Equal(t, 40.0, store.Load(param.StereoMidSide))
	assert.Equal(t, 1.0, store.Load(param.BassMono))
	assert.Equal(t, 150.0, store.Load(param.BassMonoFrequency))
	assert.Equal(t, 100.0, store.Load(param.StereoWidth))
}

func TestApplyParams_Invalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	values := registerParamFlags(fs)
	require.NoError(t, fs.Parse([]string{"-mono", "maybe"}))

	err := applyParams(param.NewStore(), values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-mono")
}

func TestDescribeParams(t *testing.T) {
	lines := describeParams(param.NewStore())
	require.Len(t, lines, param.Count)
	assert.Equal(t, "Gain: 0.0 dB", lines[0])
	assert.Contains(t, lines, "Balance: C")
	assert.Contains(t, lines, "Width: 100%")
}

func TestParseRampMode(t *testing.T) {
	m, err := parseRampMode("Time")
	require.NoError(t, err)
	assert.Equal(t, level.RampTime, m)

	m, err = parseRampMode(" block ")
	require.NoError(t, err)
	assert.Equal(t, level.RampBlock, m)

	_, err = parseRampMode("sample")
	require.Error(t, err)
}

func TestPCMConversion(t *testing.T) {
	assert.Equal(t, maxInt16, maxValue(16))
	assert.Equal(t, maxInt24, maxValue(24))
	assert.Equal(t, maxInt32, maxValue(32))
	assert.Equal(t, maxInt16, maxValue(12))

	floats := intsToFloats(make([]float64, 4), []int{0, 32767, -32767, 16384}, maxInt16)
	assert.InDeltaSlice(t, []float64{0, 1, -1, 0.5}, floats, 1e-4)

	ints, clipped := floatsToInts(make([]int, 4), []float64{0, 0.5, 1.5, -2}, maxInt16)
	assert.Equal(t, []int{0, 16383, 32767, -32767}, ints)
	assert.Equal(t, 2, clipped)
}

func TestOpenWAVInput_Errors(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	invalid := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalid, []byte("not a wav file"), 0o644))

	_, err = openWAVInput(invalid, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func writeTestWAV(t *testing.T, path string, rate, frames int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, 16, 2, wavFormatPCM)
	data := make([]int, 2*frames)

	for i := range frames {
		v := int(0.5 * maxInt16 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
		data[2*i] = v
		data[2*i+1] = v / 2
	}

	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		SourceBitDepth: 16,
	}

	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readTestWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)

	return buf
}

func TestRenderWAV_HardRightSilencesLeft(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const frames = 3000

	writeTestWAV(t, in, 44100, frames)

	p, err := utility.NewProcessor()
	require.NoError(t, err)
	require.NoError(t, p.Params().Set("pan", 50))

	stats, err := renderWAV(in, out, p, 256, false)
	require.NoError(t, err)

	assert.Equal(t, 44100, stats.sampleRate)
	assert.Equal(t, 2, stats.channels)
	assert.Equal(t, int64(frames), stats.frames)
	require.Len(t, stats.in, 2)
	require.Len(t, stats.out, 2)
	assert.InDelta(t, 0.5, stats.in[0].Peak, 1e-3)
	assert.Zero(t, stats.out[0].Peak)
	assert.InDelta(t, 0.25*math.Sqrt2, stats.out[1].Peak, 1e-3)
	assert.Zero(t, stats.clipped)
	assert.Len(t, stats.report(), 2)

	got := readTestWAV(t, out)
	require.Len(t, got.Data, 2*frames)

	for i := range frames {
		require.Zero(t, got.Data[2*i], "left frame %d", i)
	}
}

func TestRenderWAV_DefaultsPassThrough(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	writeTestWAV(t, in, 48000, 1000)

	p, err := utility.NewProcessor()
	require.NoError(t, err)

	_, err = renderWAV(in, out, p, 300, false)
	require.NoError(t, err)

	want := readTestWAV(t, in)
	got := readTestWAV(t, out)
	require.Len(t, got.Data, len(want.Data))

	for i := range want.Data {
		require.InDelta(t, want.Data[i], got.Data[i], 1, "sample %d", i)
	}
}

func TestRenderWAV_MissingInput(t *testing.T) {
	p, err := utility.NewProcessor()
	require.NoError(t, err)

	_, err = renderWAV("/nonexistent/in.wav", filepath.Join(t.TempDir(), "out.wav"), p, 256, false)
	require.Error(t, err)
}
