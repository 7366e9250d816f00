package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Default.Register(Entry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Block:     blockGeneric,
	})
}

// blockGeneric is a 2x-unrolled Direct Form II Transposed loop.
func blockGeneric(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		t0 := b1*x0 - a1*y0 + d1
		t1 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + t0
		d0 = b1*x1 - a1*y1 + t1
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
