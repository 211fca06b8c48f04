package clk

// Fixed is a constant-frequency source with no parent, e.g. a crystal
// oscillator or an internal RC oscillator.
type Fixed struct {
	Base
	rate uint64
}

func NewFixed(name string, rate uint64) *Fixed {
	return &Fixed{NewBase(name, nil, 0), rate}
}

func (c *Fixed) RecalcRate(parentRate uint64) uint64 {
	return c.rate
}

// FixedFactor scales its parent by a constant integer ratio.
type FixedFactor struct {
	Base
	mult uint64
	div  uint64
}

func NewFixedFactor(name, parent string, mult, div uint64) *FixedFactor {
	return &FixedFactor{NewBase(name, []string{parent}, 0), mult, div}
}

func (c *FixedFactor) RecalcRate(parentRate uint64) uint64 {
	return parentRate * c.mult / c.div
}
