package biquad

import (
	"sync"

	"github.com/cwbudde/algo-utility/dsp/core"
	"github.com/cwbudde/algo-utility/dsp/filter/biquad/internal/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function of one second-order section
// with a0 normalized to 1.
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is a single biquad with its delay-line state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	blockKernel     kernel.BlockFn
	blockKernelOnce sync.Once
)

func selectKernel() {
	e := kernel.Default.Lookup(cpu.DetectFeatures())
	if e == nil || e.Block == nil {
		panic("biquad: no block kernel registered")
	}

	blockKernel = e.Block
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	e := kernel.Default.Lookup(cpu.DetectFeatures())
	if e == nil {
		return ""
	}

	return e.Name
}

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place. It does not allocate. A delay line
// that has decayed below core.FlushDenormals' threshold is zeroed at the
// end of the block, so silence settles to exact zeros.
func (s *Section) ProcessBlock(buf []float64) {
	blockKernelOnce.Do(selectKernel)

	s.d0, s.d1 = blockKernel(kernel.Coefficients{
		B0: s.B0, B1: s.B1, B2: s.B2,
		A1: s.A1, A2: s.A2,
	}, s.d0, s.d1, buf)
	s.flush()
}

// ProcessBlockTo filters src into dst; dst must be at least as long as src.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1]
	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}

	s.flush()
}

func (s *Section) flush() {
	s.d0 = core.FlushDenormals(s.d0)
	s.d1 = core.FlushDenormals(s.d1)
}

// SetCoefficients swaps the transfer function and keeps the delay line.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// Reset zeroes the delay line.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// State returns the delay line as [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a delay line returned by State.
func (s *Section) SetState(st [2]float64) {
	s.d0, s.d1 = st[0], st[1]
}
