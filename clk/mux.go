package clk

import (
	"fmt"

	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Mux selects one of several candidate parents via a register field.
type Mux struct {
	Base
	regs  *mmio.Regs
	off   uint32
	shift uint
	mask  uint32
}

func NewMux(name string, parents []string, regs *mmio.Regs, off uint32, shift, width uint, flags Flags) *Mux {
	return &Mux{NewBase(name, parents, flags), regs, off, shift, 1<<width - 1}
}

func (m *Mux) ParentIndex() int {
	return int(m.regs.Read(m.off) >> m.shift & m.mask)
}

// SetParent points the selector at candidate i.
func (m *Mux) SetParent(i int) error {
	if i < 0 || i >= len(m.Parents()) || uint32(i) > m.mask {
		return fmt.Errorf("%s: no parent %d: %w", m.Name(), i, ErrInvalidState)
	}
	v := m.regs.Read(m.off)
	v &^= m.mask << m.shift
	v |= uint32(i) << m.shift
	m.regs.Write(m.off, v)
	return nil
}
