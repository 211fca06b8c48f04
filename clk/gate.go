package clk

import (
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Gate is a single enable bit over one parent, with no frequency
// transform. Depending on the register, a set bit either runs or stops the
// clock; NewGate builds the former, NewInvGate the latter.
type Gate struct {
	Base
	regs   *mmio.Regs
	off    uint32
	mask   uint32
	invert bool // set bit stops the clock
}

func NewGate(name, parent string, regs *mmio.Regs, off uint32, bit uint, flags Flags) *Gate {
	return &Gate{NewBase(name, []string{parent}, flags), regs, off, 1 << bit, false}
}

func NewInvGate(name, parent string, regs *mmio.Regs, off uint32, bit uint, flags Flags) *Gate {
	return &Gate{NewBase(name, []string{parent}, flags), regs, off, 1 << bit, true}
}

func (g *Gate) Enable() error {
	if g.invert {
		g.regs.ClearBits(g.off, g.mask)
	} else {
		g.regs.SetBits(g.off, g.mask)
	}
	return nil
}

func (g *Gate) Disable() error {
	if g.invert {
		g.regs.SetBits(g.off, g.mask)
	} else {
		g.regs.ClearBits(g.off, g.mask)
	}
	return nil
}

func (g *Gate) IsEnabled() bool {
	set := g.regs.Read(g.off)&g.mask != 0
	return set != g.invert
}
