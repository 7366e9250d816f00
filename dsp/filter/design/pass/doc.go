// Package pass designs lowpass and highpass biquad cascades: single RBJ
// sections, Butterworth cascades and the Linkwitz-Riley crossover pairs
// built from them.
//
// The *Into variants append into a caller-owned slice so that a run-time
// cutoff change can be redesigned without allocating.
package pass
