package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-utility/dsp/filter/crossover"
)

func TestParseFreqs(t *testing.T) {
	got, err := parseFreqs([]string{"60", "120.5"})
	require.NoError(t, err)
	assert.Equal(t, []float64{60, 120.5}, got)

	_, err = parseFreqs([]string{"abc"})
	require.Error(t, err)

	_, err = parseFreqs([]string{"-5"})
	require.Error(t, err)
}

func TestThirdOctaves(t *testing.T) {
	f := thirdOctaves(20, 20000)
	assert.Len(t, f, 30)
	assert.InDelta(t, 20, f[0], 1e-9)
	assert.InDelta(t, 160, f[9], 1e-9)
	assert.LessOrEqual(t, f[len(f)-1], 20000.0)
}

func TestResponseRows_SumIsFlat(t *testing.T) {
	xo, err := crossover.New(120, 4, 48000)
	require.NoError(t, err)

	rows := responseRows(xo, append(thirdOctaves(20, 20000), 30000))
	assert.Len(t, rows, 30)

	for _, r := range rows {
		assert.InDelta(t, 0, r.sumDB, 1e-3, "%.1f Hz", r.freq)
	}

	at := responseRows(xo, []float64{120})[0]
	assert.InDelta(t, -6.02, at.lpDB, 0.01)
	assert.InDelta(t, -6.02, at.hpDB, 0.01)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, []row{{freq: 100, lpDB: -1, hpDB: -20, sumDB: 0, phase: -90}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Freq [Hz]")
	assert.Contains(t, lines[2], "100.0")
	assert.Contains(t, lines[2], "-20.00")
}

func TestMeasureRows_MatchesResponse(t *testing.T) {
	xo, err := crossover.New(120, 4, 48000)
	require.NoError(t, err)

	rows := responseRows(xo, []float64{60, 120, 240, 1000, 4800})
	require.NoError(t, measureRows(xo, rows))

	for _, r := range rows {
		require.True(t, r.measured)
		assert.InDelta(t, 0, r.mSumDB, 0.01, "sum at %.1f Hz", r.freq)

		if r.lpDB > -40 {
			assert.InDelta(t, r.lpDB, r.mLPDB, 0.01, "LP at %.1f Hz", r.freq)
		}

		if r.hpDB > -40 {
			assert.InDelta(t, r.hpDB, r.mHPDB, 0.01, "HP at %.1f Hz", r.freq)
		}
	}

	// 4.8 kHz is deep in the lowpass stopband; one octave below the
	// cutoff the highpass is down about 24 dB.
	assert.Less(t, rows[4].mLPDB, -60.0)
	assert.Less(t, rows[0].mHPDB, -20.0)
}

func TestPrintTable_Measured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, []row{{
		freq: 100, lpDB: -1, hpDB: -20, measured: true, mLPDB: -1.01, mHPDB: -19.99, mSumDB: 0.001,
	}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Meas Sum [dB]")
	assert.Contains(t, lines[2], "-19.99")
}
