// Package crossover provides Linkwitz-Riley crossover networks for splitting
// an audio signal into a low and a high band.
//
// The [Crossover] type implements a two-way (LP + HP) Linkwitz-Riley crossover
// of arbitrary even order; [Stereo] pairs two of them behind one cutoff.
// The cutoff can be moved at run time with SetFreq, which recomputes the
// coefficients in place and keeps the filter memory so a sweep does not click.
//
// Linkwitz-Riley filters are constructed by cascading two identical Butterworth
// filters. An LR-2N crossover uses order-N Butterworth prototypes, producing
// -6.02 dB at the crossover frequency and allpass summation.
//
// Example:
//
//	xo, _ := crossover.New(120, 4, 48000) // LR4 at 120 Hz
//	lo, hi := xo.ProcessSample(inputSample)
//	sum := lo + hi // ≈ allpass-filtered input
package crossover
