package ccm

import (
	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// builder accumulates registrations and remembers the first failure so the
// variant setup functions can be written as straight-line table walks.
type builder struct {
	reg *clk.Registry
	err error
}

func newBuilder(reg *clk.Registry) *builder {
	return &builder{reg: reg}
}

func (b *builder) add(id int, c clk.Clock) {
	if b.err != nil {
		return
	}
	b.err = b.reg.Register(id, c)
}

func (b *builder) addPLL(id int, kind PLLKind, name, parent string, regs *mmio.Regs, off uint32) {
	if b.err != nil {
		return
	}
	p, err := NewPLL(kind, name, parent, regs, off)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.reg.Register(id, p)
}

func (b *builder) addPFD(id int, name, parent string, regs *mmio.Regs, off uint32, idx uint) {
	if b.err != nil {
		return
	}
	p, err := NewPFD(name, parent, regs, off, idx)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.reg.Register(id, p)
}

func (b *builder) finish() (*clk.Registry, error) {
	if b.err == nil {
		b.err = b.reg.Publish()
	}
	if b.err != nil {
		b.reg.Unregister()
		return nil, b.err
	}
	return b.reg, nil
}
