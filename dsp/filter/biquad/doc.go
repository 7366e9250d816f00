// Package biquad provides second-order IIR filter runtime primitives.
//
// A [Section] runs Direct Form II Transposed processing for one set of
// [Coefficients]; a [Chain] cascades sections for higher orders. Both keep
// their delay-line state across calls so that block boundaries are seamless,
// and both accept new coefficients at run time without clearing that state.
//
// Coefficient design lives in dsp/filter/design.
package biquad
