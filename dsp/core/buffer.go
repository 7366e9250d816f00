package core

// ZeroChannels clears every channel in bufs.
func ZeroChannels(bufs [][]float64) {
	for _, ch := range bufs {
		clear(ch)
	}
}

// BlockLen returns the shortest channel length in bufs, or 0 when empty.
func BlockLen(bufs [][]float64) int {
	if len(bufs) == 0 {
		return 0
	}

	n := len(bufs[0])
	for _, ch := range bufs[1:] {
		n = min(n, len(ch))
	}

	return n
}
