// Package level provides the per-channel level stages of a channel strip:
// polarity inversion, mono fold-down and click-free decibel gain.
package level
