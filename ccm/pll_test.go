package ccm

import (
	"errors"
	"testing"

	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

const oscRate = 24000000

func newTestPLL(t *testing.T, kind PLLKind) (*PLL, *mmio.Regs) {
	t.Helper()
	regs := mmio.NewRegs(make([]uint32, 1))
	pll, err := NewPLL(kind, "pll", "osc", regs, 0)
	if err != nil {
		t.Fatalf("NewPLL: %v", err)
	}
	return pll, regs
}

func TestArmRecalcRate(t *testing.T) {
	tests := []struct {
		div  uint32
		pdiv uint32
		want uint64
	}{
		{40, 0, 240000000},  // 24M * 20 / 2
		{40, 1, 120000000},  // 24M * 20 / 4
		{40, 2, 60000000},   // 24M * 20 / 8
		{104, 0, 624000000}, // 24M * 52 / 2
		{40, 3, 0},          // post-divider field not decodable
		{0, 0, 0},
	}
	pll, regs := newTestPLL(t, PLLArm)
	for _, tt := range tests {
		regs.Write(0, tt.div<<PLLARM_DIV_SHIFT|tt.pdiv<<PLLARM_PDIV_SHIFT)
		if got := pll.RecalcRate(oscRate); got != tt.want {
			t.Errorf("div %d pdiv %d: rate = %d, want %d", tt.div, tt.pdiv, got, tt.want)
		}
	}
}

func TestFixedFactorRecalcRate(t *testing.T) {
	tests := []struct {
		kind PLLKind
		want uint64
	}{
		{PLLSys2, 528000000},
		{PLLSys3, 480000000},
		{PLL1, 1000000000},
	}
	for _, tt := range tests {
		pll, _ := newTestPLL(t, tt.kind)
		if got := pll.RecalcRate(oscRate); got != tt.want {
			t.Errorf("kind %d: rate = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestV3RecalcRate(t *testing.T) {
	pll, regs := newTestPLL(t, PLLV3)
	if got := pll.RecalcRate(oscRate); got != 480000000 {
		t.Errorf("div select 0: rate = %d, want 480000000", got)
	}
	regs.Write(0, PLLV3_DIV_SELECT_MASK)
	if got := pll.RecalcRate(oscRate); got != 528000000 {
		t.Errorf("div select 1: rate = %d, want 528000000", got)
	}
}

func TestSetRateExactOnly(t *testing.T) {
	pll, _ := newTestPLL(t, PLLSys3)
	if err := pll.SetRate(480000000, oscRate); err != nil {
		t.Errorf("SetRate(exact): %v", err)
	}
	if err := pll.SetRate(480000001, oscRate); !errors.Is(err, clk.ErrInvalidState) {
		t.Errorf("SetRate(off by one): err = %v, want ErrInvalidState", err)
	}
	if got := pll.RoundRate(100, oscRate); got != 480000000 {
		t.Errorf("RoundRate = %d, want 480000000", got)
	}

	// The ARM PLL rejects rate requests outright.
	arm, regs := newTestPLL(t, PLLArm)
	regs.Write(0, 40<<PLLARM_DIV_SHIFT)
	if err := arm.SetRate(240000000, oscRate); !errors.Is(err, clk.ErrInvalidState) {
		t.Errorf("ARM SetRate: err = %v, want ErrInvalidState", err)
	}
}

func TestPrepareAlreadyPowered(t *testing.T) {
	pll, regs := newTestPLL(t, PLLSys3)
	before := PLLSYS3_PWRUP | PLL_STABLE | PLLSYS_CLKE
	regs.Write(0, before)
	if err := pll.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if regs.Read(0) != before {
		t.Errorf("Prepare on a powered PLL rewrote the register: %08x -> %08x", before, regs.Read(0))
	}
	if !pll.IsPrepared() {
		t.Error("IsPrepared = false with power-up and stable set")
	}
}

// A fake register never raises the stable bit on its own, so a cold
// Prepare must run the full sequence, time out, and leave power-up
// asserted for the caller's Unprepare.
func TestPrepareLockTimeout(t *testing.T) {
	pll, regs := newTestPLL(t, PLLSys3)
	err := pll.Prepare()
	if !errors.Is(err, clk.ErrLockTimeout) {
		t.Fatalf("Prepare: err = %v, want ErrLockTimeout", err)
	}
	v := regs.Read(0)
	if v&PLLSYS3_PWRUP == 0 {
		t.Error("power-up bit cleared after lock timeout")
	}
	if v&PLLSYS_HOLD_RING_OFF != 0 {
		t.Error("hold-ring-off still asserted after the lock wait")
	}
	if v&PLL_GATE == 0 {
		t.Error("gate released during a failed Prepare")
	}

	pll.Unprepare()
	v = regs.Read(0)
	if v&(PLLSYS3_PWRUP|PLLSYS_CLKE) != 0 {
		t.Errorf("Unprepare left %08x, want power-up and enable clear", v)
	}
	if v&PLL_GATE == 0 {
		t.Error("Unprepare released the gate")
	}
}

func TestEnableBeforePrepare(t *testing.T) {
	pll, regs := newTestPLL(t, PLLArm)
	err := pll.Enable()
	if !errors.Is(err, clk.ErrInvalidState) {
		t.Fatalf("Enable unpowered: err = %v, want ErrInvalidState", err)
	}
	if regs.Read(0) != 0 {
		t.Errorf("failed Enable wrote the register: %08x", regs.Read(0))
	}
}

func TestEnableDisable(t *testing.T) {
	pll, regs := newTestPLL(t, PLLSys2)
	regs.Write(0, PLLSYS2_PWRUP|PLL_STABLE|PLL_GATE)
	if pll.IsEnabled() {
		t.Error("IsEnabled = true while gated")
	}
	if err := pll.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	v := regs.Read(0)
	if v&PLLSYS_CLKE == 0 || v&PLL_GATE != 0 {
		t.Errorf("after Enable: %08x, want enable set, gate clear", v)
	}
	if !pll.IsEnabled() {
		t.Error("IsEnabled = false after Enable")
	}

	// Disable drops back to the stable state, not unpowered.
	if err := pll.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	v = regs.Read(0)
	if v&PLLSYS_CLKE != 0 || v&PLL_GATE == 0 {
		t.Errorf("after Disable: %08x, want enable clear, gate set", v)
	}
	if v&PLLSYS2_PWRUP == 0 {
		t.Error("Disable cleared the power-up bit")
	}
	if !pll.IsPrepared() {
		t.Error("IsPrepared = false after Disable")
	}
}

// PLL1 has no power-up sequencing at all: always prepared, gate bit only.
func TestPLL1NoSequencing(t *testing.T) {
	pll, regs := newTestPLL(t, PLL1)
	if !pll.IsPrepared() {
		t.Error("PLL1 not prepared at reset")
	}
	if err := pll.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if regs.Read(0) != 0 {
		t.Errorf("PLL1 Prepare wrote the register: %08x", regs.Read(0))
	}
	regs.Write(0, PLL_STABLE|PLL1_GATE)
	if err := pll.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	v := regs.Read(0)
	if v&PLLSYS_CLKE == 0 || v&PLL1_GATE != 0 {
		t.Errorf("after Enable: %08x", v)
	}
	if !pll.IsEnabled() {
		t.Error("IsEnabled = false after Enable")
	}
}

func TestNewPLLUnknownKind(t *testing.T) {
	regs := mmio.NewRegs(make([]uint32, 1))
	if _, err := NewPLL(PLLKind(99), "x", "osc", regs, 0); err == nil {
		t.Error("NewPLL accepted an unknown kind")
	}
}
