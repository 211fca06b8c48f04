package clk

import (
	"testing"

	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

func TestFixed(t *testing.T) {
	c := NewFixed("osc", 24000000)
	if c.Name() != "osc" {
		t.Errorf("Name() = %q, want osc", c.Name())
	}
	if len(c.Parents()) != 0 {
		t.Errorf("Parents() = %v, want none", c.Parents())
	}
	if got := c.RecalcRate(12345); got != 24000000 {
		t.Errorf("RecalcRate = %d, want 24000000", got)
	}
}

func TestFixedFactor(t *testing.T) {
	tests := []struct {
		mult, div  uint64
		parentRate uint64
		want       uint64
	}{
		{3, 1, 16000000, 48000000},
		{1, 2, 48000000, 24000000},
		{25, 1, 16000000, 400000000},
	}
	for _, tt := range tests {
		c := NewFixedFactor("ff", "p", tt.mult, tt.div)
		if got := c.RecalcRate(tt.parentRate); got != tt.want {
			t.Errorf("x%d/%d of %d = %d, want %d", tt.mult, tt.div, tt.parentRate, got, tt.want)
		}
	}
}

func TestGate(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	g := NewGate("g", "p", regs, 0, 5, 0)
	if g.IsEnabled() {
		t.Error("gate enabled before Enable")
	}
	g.Enable()
	if regs.Read(0) != 1<<5 {
		t.Errorf("after Enable: reg = %08x, want %08x", regs.Read(0), uint32(1<<5))
	}
	if !g.IsEnabled() {
		t.Error("gate not enabled after Enable")
	}
	g.Disable()
	if regs.Read(0) != 0 {
		t.Errorf("after Disable: reg = %08x, want 0", regs.Read(0))
	}
}

func TestInvGate(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	g := NewInvGate("g", "p", regs, 0, 24, 0)
	if !g.IsEnabled() {
		t.Error("inverted gate disabled with bit clear")
	}
	g.Disable()
	if regs.Read(0) != 1<<24 {
		t.Errorf("after Disable: reg = %08x, want %08x", regs.Read(0), uint32(1<<24))
	}
	g.Enable()
	if g.IsEnabled() != true || regs.Read(0) != 0 {
		t.Errorf("after Enable: reg = %08x enabled %v", regs.Read(0), g.IsEnabled())
	}
}

func TestMux(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	m := NewMux("m", []string{"a", "b", "c", "d"}, regs, 0, 8, 2, 0)
	if m.ParentIndex() != 0 {
		t.Errorf("ParentIndex = %d, want 0", m.ParentIndex())
	}
	if err := m.SetParent(2); err != nil {
		t.Fatalf("SetParent(2): %v", err)
	}
	if m.ParentIndex() != 2 {
		t.Errorf("ParentIndex after SetParent(2) = %d", m.ParentIndex())
	}
	if regs.Read(0) != 2<<8 {
		t.Errorf("reg = %08x, want %08x", regs.Read(0), uint32(2<<8))
	}
	if err := m.SetParent(4); err == nil {
		t.Error("SetParent(4) on a 4-parent mux succeeded")
	}
	if err := m.SetParent(-1); err == nil {
		t.Error("SetParent(-1) succeeded")
	}
}

func TestDivider(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	d := NewDivider("d", "p", regs, 0, 10, 3, 0)
	if got := d.RecalcRate(480000000); got != 480000000 {
		t.Errorf("field 0: rate = %d, want parent rate", got)
	}
	regs.Write(0, 3<<10)
	if got := d.RecalcRate(480000000); got != 120000000 {
		t.Errorf("field 3: rate = %d, want 120000000", got)
	}
}

func TestComposite(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	parents := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	c := NewComposite("root", parents, regs, 0, 8, 3, 0, 8, 24, true, 0)

	if !c.IsEnabled() {
		t.Error("composite gated with OFF bit clear")
	}
	c.Disable()
	if regs.Read(0) != 1<<24 {
		t.Errorf("after Disable: reg = %08x, want OFF bit", regs.Read(0))
	}
	if c.IsEnabled() {
		t.Error("composite enabled with OFF bit set")
	}
	c.Enable()
	if regs.Read(0) != 0 {
		t.Errorf("after Enable: reg = %08x, want 0", regs.Read(0))
	}

	if err := c.SetParent(5); err != nil {
		t.Fatalf("SetParent(5): %v", err)
	}
	if c.ParentIndex() != 5 {
		t.Errorf("ParentIndex = %d, want 5", c.ParentIndex())
	}

	// Divider field is zero-based.
	regs.Write(0, regs.Read(0)|3)
	if got := c.RecalcRate(400000000); got != 100000000 {
		t.Errorf("div field 3: rate = %d, want 100000000", got)
	}

	// Selector and divider fields don't disturb each other.
	if c.ParentIndex() != 5 {
		t.Errorf("ParentIndex after divider write = %d, want 5", c.ParentIndex())
	}
}
