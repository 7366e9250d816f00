//go:build amd64 && !purego

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Default.Register(Entry{
		Name:      "unroll4",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Block:     blockUnroll4,
	})
}

// blockUnroll4 is a 4x-unrolled scalar loop; wide out-of-order cores keep
// more multiplies in flight with it.
func blockUnroll4(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0
	for ; i+3 < n; i += 4 {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y

		x = buf[i+1]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+1] = y

		x = buf[i+2]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+2] = y

		x = buf[i+3]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+3] = y
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
