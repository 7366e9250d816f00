package param

import "math"

// Range maps plain values to 0..1 and back with an optional skew:
// Denormalize(n) = Min + (Max-Min)·n^(1/Skew). Skew 1 is linear, Skew < 1
// spends more of the control travel on the upper part of the range.
type Range struct {
	Min, Max float64
	Skew     float64
}

// SkewFromMidpoint returns the skew that puts mid at normalized 0.5.
func SkewFromMidpoint(lo, hi, mid float64) float64 {
	p := (mid - lo) / (hi - lo)
	if !(p > 0 && p < 1) {
		return 1
	}

	return math.Log(0.5) / math.Log(p)
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Normalize maps a plain value to 0..1.
func (r Range) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}

	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew > 0 && r.Skew != 1 {
		p = math.Pow(p, r.Skew)
	}

	return p
}

// Denormalize maps 0..1 back to a plain value.
func (r Range) Denormalize(n float64) float64 {
	n = math.Min(math.Max(n, 0), 1)
	if r.Skew > 0 && r.Skew != 1 && n > 0 {
		n = math.Exp(math.Log(n) / r.Skew)
	}

	return r.Min + (r.Max-r.Min)*n
}
