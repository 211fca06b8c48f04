package ccm

import (
	"fmt"

	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Four PFDs share one control register, one byte each: the fractional
// divider in bits [5:0] of the byte, the gate in bit 7 (set stops the
// output). A PFD's rate is parent * 18 / frac.
const (
	PFD_FRAC_MASK = uint32(0x3f)
	PFD_GATE_BIT  = 7
	pfdStride     = 8
)

// PFD is one programmable fractional divider tap on a PLL output.
type PFD struct {
	clk.Base
	regs *mmio.Regs
	off  uint32
	idx  uint
}

func NewPFD(name, parent string, regs *mmio.Regs, off uint32, idx uint) (*PFD, error) {
	if idx > 3 {
		return nil, fmt.Errorf("%s: PFD index %d outside 0..3", name, idx)
	}
	return &PFD{clk.NewBase(name, []string{parent}, 0), regs, off, idx}, nil
}

func (p *PFD) shift() uint {
	return p.idx * pfdStride
}

func (p *PFD) RecalcRate(parentRate uint64) uint64 {
	frac := uint64(p.regs.Read(p.off) >> p.shift() & PFD_FRAC_MASK)
	if frac == 0 {
		return 0
	}
	return parentRate * 18 / frac
}

func (p *PFD) Enable() error {
	p.regs.ClearBits(p.off, 1<<(PFD_GATE_BIT+p.shift()))
	return nil
}

func (p *PFD) Disable() error {
	p.regs.SetBits(p.off, 1<<(PFD_GATE_BIT+p.shift()))
	return nil
}

func (p *PFD) IsEnabled() bool {
	return p.regs.Read(p.off)&(1<<(PFD_GATE_BIT+p.shift())) == 0
}
