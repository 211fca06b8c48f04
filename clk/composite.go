package clk

import (
	"fmt"

	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Composite is a clock generation point combining a parent selector, an
// integer divider and a gate, all fields of one register. The divider
// field is zero-based (field value 0 divides by 1).
type Composite struct {
	Base
	regs         *mmio.Regs
	off          uint32
	muxShift     uint
	muxMask      uint32
	divShift     uint
	divMask      uint32
	gateMask     uint32
	setToDisable bool // gate bit stops the clock when set
}

func NewComposite(name string, parents []string, regs *mmio.Regs, off uint32,
	muxShift, muxWidth, divShift, divWidth, gateBit uint, setToDisable bool, flags Flags) *Composite {
	return &Composite{
		Base:         NewBase(name, parents, flags),
		regs:         regs,
		off:          off,
		muxShift:     muxShift,
		muxMask:      1<<muxWidth - 1,
		divShift:     divShift,
		divMask:      1<<divWidth - 1,
		gateMask:     1 << gateBit,
		setToDisable: setToDisable,
	}
}

func (c *Composite) ParentIndex() int {
	return int(c.regs.Read(c.off) >> c.muxShift & c.muxMask)
}

// SetParent points the selector at candidate i.
func (c *Composite) SetParent(i int) error {
	if i < 0 || i >= len(c.Parents()) || uint32(i) > c.muxMask {
		return fmt.Errorf("%s: no parent %d: %w", c.Name(), i, ErrInvalidState)
	}
	v := c.regs.Read(c.off)
	v &^= c.muxMask << c.muxShift
	v |= uint32(i) << c.muxShift
	c.regs.Write(c.off, v)
	return nil
}

func (c *Composite) RecalcRate(parentRate uint64) uint64 {
	div := uint64(c.regs.Read(c.off)>>c.divShift&c.divMask) + 1
	return parentRate / div
}

func (c *Composite) Enable() error {
	if c.setToDisable {
		c.regs.ClearBits(c.off, c.gateMask)
	} else {
		c.regs.SetBits(c.off, c.gateMask)
	}
	return nil
}

func (c *Composite) Disable() error {
	if c.setToDisable {
		c.regs.SetBits(c.off, c.gateMask)
	} else {
		c.regs.ClearBits(c.off, c.gateMask)
	}
	return nil
}

func (c *Composite) IsEnabled() bool {
	set := c.regs.Read(c.off)&c.gateMask != 0
	return set != c.setToDisable
}
