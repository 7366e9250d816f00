package buffer

import (
	"fmt"

	"github.com/tphakala/simd/f64"
)

// Buffer holds channel-major (planar) audio. Every channel has the same
// length.
type Buffer struct {
	channels [][]float64
	view     [][]float64
}

// New returns a zero-filled Buffer with numChannels channels of numSamples
// samples each.
func New(numChannels, numSamples int) *Buffer {
	numChannels = max(numChannels, 0)
	numSamples = max(numSamples, 0)

	b := &Buffer{
		channels: make([][]float64, numChannels),
		view:     make([][]float64, numChannels),
	}
	for c := range b.channels {
		b.channels[c] = make([]float64, numSamples)
	}

	return b
}

// FromChannels wraps existing channel slices without copying. All channels
// must share one length.
func FromChannels(channels [][]float64) (*Buffer, error) {
	for c := 1; c < len(channels); c++ {
		if len(channels[c]) != len(channels[0]) {
			return nil, fmt.Errorf("buffer: channel %d has %d samples, want %d", c, len(channels[c]), len(channels[0]))
		}
	}

	return &Buffer{channels: channels, view: make([][]float64, len(channels))}, nil
}

// Channels returns the per-channel slices.
func (b *Buffer) Channels() [][]float64 {
	return b.channels
}

// Channel returns channel c.
func (b *Buffer) Channel(c int) []float64 {
	return b.channels[c]
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// NumSamples returns the per-channel length.
func (b *Buffer) NumSamples() int {
	if len(b.channels) == 0 {
		return 0
	}

	return len(b.channels[0])
}

// Resize sets every channel's length to n, reusing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	for c, ch := range b.channels {
		oldLen := len(ch)
		if n <= cap(ch) {
			ch = ch[:n]
		} else {
			grown := make([]float64, n)
			copy(grown, ch)
			ch = grown
		}

		// The backing array may hold stale samples from earlier use.
		if n > oldLen {
			clear(ch[oldLen:n])
		}

		b.channels[c] = ch
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for _, ch := range b.channels {
		clear(ch)
	}
}

// ZeroRange sets samples in [start, end) to 0 on every channel.
// Indices are clamped to valid bounds.
func (b *Buffer) ZeroRange(start, end int) {
	start = max(start, 0)
	end = min(end, b.NumSamples())
	if start >= end {
		return
	}

	for _, ch := range b.channels {
		clear(ch[start:end])
	}
}

// Block returns a view of samples [offset, offset+n) on every channel,
// clamped to the buffer length. The returned outer slice is reused by the
// next Block call.
func (b *Buffer) Block(offset, n int) [][]float64 {
	total := b.NumSamples()
	offset = min(max(offset, 0), total)
	end := min(offset+max(n, 0), total)

	for c, ch := range b.channels {
		b.view[c] = ch[offset:end]
	}

	return b.view
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := New(b.NumChannels(), b.NumSamples())
	for c, ch := range b.channels {
		copy(out.channels[c], ch)
	}

	return out
}

// FromInterleaved builds a Buffer from interleaved frames. A trailing
// partial frame is dropped.
func FromInterleaved(data []float64, numChannels int) (*Buffer, error) {
	if numChannels <= 0 {
		return nil, fmt.Errorf("buffer: channel count must be > 0: %d", numChannels)
	}

	b := New(numChannels, len(data)/numChannels)
	b.Deinterleave(data)

	return b, nil
}

// Deinterleave fills the buffer from interleaved frames, stopping at
// whichever runs out first, and returns the number of frames copied.
func (b *Buffer) Deinterleave(data []float64) int {
	nc := b.NumChannels()
	if nc == 0 {
		return 0
	}

	frames := min(len(data)/nc, b.NumSamples())
	for c, ch := range b.channels {
		for i := range frames {
			ch[i] = data[i*nc+c]
		}
	}

	return frames
}

// Interleave writes the buffer into dst as interleaved frames, growing dst
// when it is too short, and returns the filled slice.
func (b *Buffer) Interleave(dst []float64) []float64 {
	nc := b.NumChannels()
	n := b.NumSamples()

	total := nc * n
	if cap(dst) < total {
		dst = make([]float64, total)
	}

	dst = dst[:total]

	if nc == 2 {
		f64.Interleave2(dst, b.channels[0], b.channels[1])
		return dst
	}

	for c, ch := range b.channels {
		for i, v := range ch {
			dst[i*nc+c] = v
		}
	}

	return dst
}
