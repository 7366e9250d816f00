// Package buffer provides a planar multi-channel float64 buffer for
// allocation-friendly block processing. Processors take [][]float64 with
// one slice per channel; Buffer owns that layout, keeps its capacity across
// resizes and converts to and from interleaved frames.
package buffer
