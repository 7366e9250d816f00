package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-utility/dsp/buffer"
)

func ExampleBuffer() {
	b, _ := buffer.FromInterleaved([]float64{1, -1, 2, -2, 3, -3}, 2)
	fmt.Println(b.NumChannels(), b.NumSamples())
	fmt.Println(b.Channels())

	b.ZeroRange(0, 1)
	fmt.Println(b.Interleave(nil))

	// Output:
	// 2 3
	// [[1 2 3] [-1 -2 -3]]
	// [0 0 2 -2 3 -3]
}
