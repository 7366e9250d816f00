package biquad

// Chain is a cascade of sections processed in series.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with one section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample runs x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst through the full cascade.
func (c *Chain) ProcessBlockTo(dst, src []float64) {
	if len(c.sections) == 0 {
		copy(dst, src)
		return
	}

	c.sections[0].ProcessBlockTo(dst, src)
	for i := 1; i < len(c.sections); i++ {
		c.sections[i].ProcessBlock(dst[:len(src)])
	}
}

// UpdateCoefficients installs new coefficients. When the section count is
// unchanged the delay lines are kept, so a cutoff sweep does not click;
// otherwise the sections are rebuilt with zero state.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients) {
	if len(coeffs) == len(c.sections) {
		for i := range c.sections {
			c.sections[i].Coefficients = coeffs[i]
		}

		return
	}

	c.sections = make([]Section, len(coeffs))
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Reset zeroes every section's delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the nominal filter order, two per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// NumSections returns the number of cascaded sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// State snapshots every section's delay line.
func (c *Chain) State() [][2]float64 {
	st := make([][2]float64, len(c.sections))
	for i := range c.sections {
		st[i] = c.sections[i].State()
	}

	return st
}

// SetState restores delay lines saved with State.
func (c *Chain) SetState(st [][2]float64) {
	for i := range c.sections {
		if i >= len(st) {
			return
		}

		c.sections[i].SetState(st[i])
	}
}
