// Package spectrum measures the frequency content of processed audio.
//
// Analyzer wraps a real-input FFT plan and reports power spectra, band power
// and magnitude responses. Goertzel evaluates a single bin without a full
// transform and is the cheaper choice for tone level checks.
package spectrum
