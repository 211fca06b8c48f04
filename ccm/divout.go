package ccm

import (
	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// DivOut is a fixed-ratio tap on a PLL output (pll1_div2, pll1_div5,
// pll3_div2): an integer divide-by-N stage layered with a single gate bit
// in the PLL's own control register. The ratio never changes at runtime;
// the gate bit runs the tap when set.
type DivOut struct {
	clk.Base
	regs *mmio.Regs
	off  uint32
	div  uint64
	mask uint32
}

func NewDivOut(name, parent string, regs *mmio.Regs, off uint32, div uint64, gateBit uint) *DivOut {
	return &DivOut{clk.NewBase(name, []string{parent}, 0), regs, off, div, 1 << gateBit}
}

func (d *DivOut) RecalcRate(parentRate uint64) uint64 {
	return parentRate / d.div
}

func (d *DivOut) Enable() error {
	d.regs.SetBits(d.off, d.mask)
	return nil
}

func (d *DivOut) Disable() error {
	d.regs.ClearBits(d.off, d.mask)
	return nil
}

func (d *DivOut) IsEnabled() bool {
	return d.regs.Read(d.off)&d.mask != 0
}
