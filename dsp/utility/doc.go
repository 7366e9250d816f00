// Package utility implements a real-time stereo utility strip: polarity
// inversion, stereo width or mid/side balance, mono fold-down, bass mono
// through a Linkwitz-Riley crossover, gain and equal-power panning.
//
// The pipeline is split into three parts:
//
//   - [Snapshot] is a plain value holding every control for one block.
//   - [State] owns all filter and smoothing memory. [Prepare] (re)builds it,
//     [Process] runs one block in place and never allocates.
//   - [Processor] ties a [param.Store] to a State for hosts that write
//     parameters from another goroutine.
//
// Stage order is fixed: phase, stereo field, mono, bass mono, gain, pan.
package utility
