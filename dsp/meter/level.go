package meter

import (
	"math"

	"github.com/meko-christian/algo-approx"
	"github.com/tphakala/simd/f64"
)

// FloorDB is the lowest level reported. Silence reads as FloorDB.
const FloorDB = -100.0

const ln10 = 2.302585092994045684017991454684

// Levels holds the linear peak and RMS of a signal.
type Levels struct {
	Peak float64
	RMS  float64
}

// PeakDB returns the peak in dBFS.
func (l Levels) PeakDB() float64 { return AmplitudeDB(l.Peak) }

// RMSDB returns the RMS in dBFS.
func (l Levels) RMSDB() float64 { return AmplitudeDB(l.RMS) }

// Measure returns the peak and RMS of x.
func Measure(x []float64) Levels {
	if len(x) == 0 {
		return Levels{}
	}

	return Levels{
		Peak: PeakAbs(x),
		RMS:  math.Sqrt(MeanSquare(x)),
	}
}

// PeakAbs returns max |x[i]|.
func PeakAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// MeanSquare returns the mean of x[i]^2, or 0 for an empty slice.
func MeanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return f64.DotProduct(x, x) / float64(len(x))
}

// AmplitudeDB converts a linear amplitude to dB, clamped at FloorDB.
func AmplitudeDB(a float64) float64 {
	return PowerDB(a * a)
}

// PowerDB converts a power ratio to dB, clamped at FloorDB.
func PowerDB(p float64) float64 {
	if !(p > 0) {
		return FloorDB
	}

	return max(10*approx.FastLog(p)/ln10, FloorDB)
}
