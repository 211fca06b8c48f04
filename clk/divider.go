package clk

import (
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Divider divides its parent by a register field plus one (field 0 means
// divide by 1).
type Divider struct {
	Base
	regs  *mmio.Regs
	off   uint32
	shift uint
	mask  uint32
}

func NewDivider(name, parent string, regs *mmio.Regs, off uint32, shift, width uint, flags Flags) *Divider {
	return &Divider{NewBase(name, []string{parent}, flags), regs, off, shift, 1<<width - 1}
}

func (d *Divider) RecalcRate(parentRate uint64) uint64 {
	div := uint64(d.regs.Read(d.off)>>d.shift&d.mask) + 1
	return parentRate / div
}
