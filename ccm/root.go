package ccm

import (
	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Every clock root control register shares one layout: parent selector in
// bits [10:8] (up to 8 candidates), zero-based divider in bits [7:0], OFF
// bit 24 (set stops the root).
const (
	ROOT_MUX_SHIFT = 8
	ROOT_MUX_WIDTH = 3
	ROOT_DIV_SHIFT = 0
	ROOT_DIV_WIDTH = 8
	ROOT_OFF_BIT   = 24
)

func newRoot(name string, parents []string, regs *mmio.Regs, off uint32, flags clk.Flags) *clk.Composite {
	return clk.NewComposite(name, parents, regs, off,
		ROOT_MUX_SHIFT, ROOT_MUX_WIDTH, ROOT_DIV_SHIFT, ROOT_DIV_WIDTH,
		ROOT_OFF_BIT, true, flags)
}

// gate2 is the two-bit peripheral gate of the older CCGR layout: field
// value 3 runs the clock, 0 stops it.
type gate2 struct {
	clk.Base
	regs *mmio.Regs
	off  uint32
	bit  uint
}

func newGate2(name, parent string, regs *mmio.Regs, off uint32, bit uint, flags clk.Flags) *gate2 {
	return &gate2{clk.NewBase(name, []string{parent}, flags), regs, off, bit}
}

func (g *gate2) Enable() error {
	g.regs.SetBits(g.off, 0x3<<g.bit)
	return nil
}

func (g *gate2) Disable() error {
	g.regs.ClearBits(g.off, 0x3<<g.bit)
	return nil
}

func (g *gate2) IsEnabled() bool {
	return g.regs.Read(g.off)>>g.bit&0x3 == 0x3
}
