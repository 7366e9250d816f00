// Command xoverinfo prints the response of the bass mono crossover.
//
// Usage:
//
//	xoverinfo [flags] [freq-hz ...]
//
// Without frequency arguments it prints 1/3-octave steps from 20 Hz up to
// 20 kHz.
//
// Examples:
//
//	xoverinfo
//	xoverinfo -freq 200 -rate 44100
//	xoverinfo -order 8 60 120 240
//	xoverinfo -measure 60 120 240
//
// With -measure, a sine at each frequency is also run through the filter
// and the settled LP, HP and sum levels are read back with a Goertzel
// detector.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/filter/biquad"
	"github.com/cwbudde/algo-utility/dsp/filter/crossover"
	"github.com/cwbudde/algo-utility/dsp/spectrum"
)

const (
	floorDB = -300.0

	// Tones run this long before measuring, and are measured over at
	// least minCycles periods.
	settleSeconds = 0.5
	minCycles     = 20
)

type row struct {
	freq  float64
	lpDB  float64
	hpDB  float64
	sumDB float64
	phase float64

	measured bool
	mLPDB    float64
	mHPDB    float64
	mSumDB   float64
}

func main() {
	freq := flag.Float64("freq", 120, "crossover frequency in Hz (clamped like the bass mono stage)")
	order := flag.Int("order", 4, "Linkwitz-Riley order (even)")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	measure := flag.Bool("measure", false, "also measure each point with a filtered sine")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xoverinfo [flags] [freq-hz ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints lowpass, highpass and summed response of the crossover.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	points, err := parseFreqs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if len(points) == 0 {
		points = thirdOctaves(20, 20000)
	}

	xo, err := crossover.New(crossover.ClampFreq(*freq, *rate), *order, *rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("LR%d at %.1f Hz, %.0f Hz sample rate, kernel %s\n\n", xo.Order(), xo.Freq(), xo.SampleRate(), biquad.KernelName())

	rows := responseRows(xo, points)
	if *measure {
		if err := measureRows(xo, rows); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := printTable(os.Stdout, rows); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFreqs(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))

	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil || !(f > 0) {
			return nil, fmt.Errorf("invalid frequency %q", a)
		}

		out = append(out, f)
	}

	return out, nil
}

// thirdOctaves returns 1/3-octave steps from lo up to and including hi.
func thirdOctaves(lo, hi float64) []float64 {
	var out []float64
	for f := lo; f <= hi*1.0001; f *= math.Pow(2, 1.0/3) {
		out = append(out, f)
	}

	return out
}

func responseRows(xo *crossover.Crossover, freqs []float64) []row {
	sr := xo.SampleRate()
	rows := make([]row, 0, len(freqs))

	for _, f := range freqs {
		if f >= sr/2 {
			continue
		}

		lp := xo.LP().Response(f, sr)
		hp := xo.HP().Response(f, sr)
		sum := lp + hp

		rows = append(rows, row{
			freq:  f,
			lpDB:  toDB(lp),
			hpDB:  toDB(hp),
			sumDB: toDB(sum),
			phase: cmplx.Phase(sum) * 180 / math.Pi,
		})
	}

	return rows
}

// measureRows runs a unit sine at each row's frequency through xo and
// fills in the measured levels. xo is reset before every tone.
func measureRows(xo *crossover.Crossover, rows []row) error {
	sr := xo.SampleRate()
	settle := int(settleSeconds * sr)

	for i := range rows {
		r := &rows[i]
		// Whole cycles keep Goertzel leakage down.
		period := sr / r.freq
		cycles := math.Max(minCycles, math.Ceil(sr/10/period))
		n := int(math.Round(cycles * period))

		in := make([]float64, settle+n)
		for k := range in {
			in[k] = math.Sin(2 * math.Pi * r.freq * float64(k) / sr)
		}

		lo := make([]float64, len(in))
		hi := make([]float64, len(in))

		xo.Reset()
		xo.ProcessBlock(in, lo, hi)

		sum := make([]float64, len(in))
		copy(sum, lo)
		vecmath.AddBlockInPlace(sum, hi)

		for _, m := range []struct {
			dst *float64
			x   []float64
		}{{&r.mLPDB, lo}, {&r.mHPDB, hi}, {&r.mSumDB, sum}} {
			amp, err := spectrum.ToneAmplitude(m.x[settle:], r.freq, sr)
			if err != nil {
				return err
			}

			*m.dst = core.GainToDB(amp, floorDB)
		}

		r.measured = true
	}

	xo.Reset()

	return nil
}

func toDB(h complex128) float64 {
	return core.GainToDB(cmplx.Abs(h), floorDB)
}

func printTable(w io.Writer, rows []row) error {
	measured := false
	for _, r := range rows {
		measured = measured || r.measured
	}

	header := "Freq [Hz]\tLP [dB]\tHP [dB]\tSum [dB]\tSum phase [deg]"
	rule := "---------\t-------\t-------\t--------\t---------------"

	if measured {
		header += "\tMeas LP [dB]\tMeas HP [dB]\tMeas Sum [dB]"
		rule += "\t------------\t------------\t-------------"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return err
	}

	for _, r := range rows {
		line := fmt.Sprintf("%.1f\t%.2f\t%.2f\t%.3f\t%.1f", r.freq, r.lpDB, r.hpDB, r.sumDB, r.phase)
		if measured {
			line += fmt.Sprintf("\t%.2f\t%.2f\t%.3f", r.mLPDB, r.mHPDB, r.mSumDB)
		}

		if _, err := fmt.Fprintln(tw, line); err != nil {
			return err
		}
	}

	return tw.Flush()
}
