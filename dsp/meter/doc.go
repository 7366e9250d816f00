// Package meter reads peak and RMS levels of audio blocks for display.
//
// Readouts in dB use fast approximations; they are meant for meters and
// reports, not for further signal processing.
package meter
