// Package ccm implements the clock controller module of the i.MXRT SoC
// family: the ANADIG PLL state machines, fractional dividers and PLL
// output taps, the CCM clock roots and peripheral gates, and the
// table-driven bring-up that registers the whole tree.
package ccm

import (
	"fmt"
	"time"

	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// PLL control register bits. Positions differ per PLL kind; see the
// pllKinds table for which kind uses which.
const (
	PLLARM_DIV_MASK       = 0xff
	PLLARM_DIV_SHIFT      = 0
	PLLARM_PDIV_MASK      = 0x3 << 15
	PLLARM_PDIV_SHIFT     = 15
	PLLARM_HOLD_RING_OFF  = uint32(1 << 12)
	PLLSYS_HOLD_RING_OFF  = uint32(1 << 11)
	PLLARM_PWRUP          = uint32(1 << 13)
	PLLSYS2_PWRUP         = uint32(1 << 23)
	PLLSYS3_PWRUP         = uint32(1 << 21)
	PLLARM_CLKE           = uint32(1 << 14)
	PLLSYS_CLKE           = uint32(1 << 13)
	PLL1_GATE             = uint32(1 << 14)
	PLL_STABLE            = uint32(1 << 29)
	PLL_GATE              = uint32(1 << 30)
	PLLV3_POWER           = uint32(1 << 12)
	PLLV3_ENABLE          = uint32(1 << 13)
	PLLV3_LOCK            = uint32(1 << 31)
	PLLV3_DIV_SELECT_MASK = uint32(1 << 0)
)

// Lock deadlines after the power-up bit is set, and the shared settle/poll
// timing of the power-up sequence.
const (
	PLLARM_LOCK_TIME  = 60 * time.Microsecond
	PLLSYS2_LOCK_TIME = 500 * time.Microsecond
	PLLSYS3_LOCK_TIME = 60 * time.Microsecond
	PLLV3_LOCK_TIME   = 10 * time.Millisecond

	pllSettleTime   = 30 * time.Microsecond
	pllPollInterval = 10 * time.Microsecond
)

// pdivLookup maps the ARM PLL's 2-bit post-divider field to a divisor.
// Field value 3 is outside the lookup: recalc reports rate 0 for it, the
// signal for "register state not decodable", and callers must not read
// that as a stopped clock.
var pdivLookup = []uint64{2, 4, 8}

// PLLKind selects a PLL's control-bit layout, timing and rate formula.
type PLLKind int

const (
	// PLLArm is the core-processor PLL with a live multiplier/post-divider.
	PLLArm PLLKind = iota
	// PLLSys2 and PLLSys3 multiply their parent by a fixed integer
	// factor (22 and 20). The factor is wired, not runtime-adjustable.
	PLLSys2
	PLLSys3
	// PLL1 outputs a constant 1 GHz and has no power-up sequencing.
	PLL1
	// PLLV3 is the older SoC revision's PLL block: lock bit at the
	// register top, factor 20 or 22 by the div-select bit.
	PLLV3
)

type rateRule int

const (
	rateArm       rateRule = iota // parent * (div/2) / pdivLookup[pdiv]
	rateFactor                    // parent * factor
	rateConst                     // factor, ignoring parent
	rateDivSelect                 // parent * (22 or 20 by div-select bit)
)

type pllParams struct {
	powerup     uint32
	enable      uint32
	stable      uint32
	gate        uint32
	holdRingOff uint32
	divMask     uint32
	divShift    uint
	pdivMask    uint32
	pdivShift   uint
	lockTime    time.Duration
	rule        rateRule
	factor      uint64 // rateFactor multiplier / rateConst output
	prepares    bool   // kind has a power-up sequence
}

var pllKinds = map[PLLKind]pllParams{
	PLLArm: {
		powerup:     PLLARM_PWRUP,
		enable:      PLLARM_CLKE,
		stable:      PLL_STABLE,
		gate:        PLL_GATE,
		holdRingOff: PLLARM_HOLD_RING_OFF,
		divMask:     PLLARM_DIV_MASK,
		divShift:    PLLARM_DIV_SHIFT,
		pdivMask:    PLLARM_PDIV_MASK,
		pdivShift:   PLLARM_PDIV_SHIFT,
		lockTime:    PLLARM_LOCK_TIME,
		rule:        rateArm,
		prepares:    true,
	},
	PLLSys2: {
		powerup:     PLLSYS2_PWRUP,
		enable:      PLLSYS_CLKE,
		stable:      PLL_STABLE,
		gate:        PLL_GATE,
		holdRingOff: PLLSYS_HOLD_RING_OFF,
		lockTime:    PLLSYS2_LOCK_TIME,
		rule:        rateFactor,
		factor:      22,
		prepares:    true,
	},
	PLLSys3: {
		powerup:     PLLSYS3_PWRUP,
		enable:      PLLSYS_CLKE,
		stable:      PLL_STABLE,
		gate:        PLL_GATE,
		holdRingOff: PLLSYS_HOLD_RING_OFF,
		lockTime:    PLLSYS3_LOCK_TIME,
		rule:        rateFactor,
		factor:      20,
		prepares:    true,
	},
	PLL1: {
		enable: PLLSYS_CLKE,
		stable: PLL_STABLE,
		gate:   PLL1_GATE,
		rule:   rateConst,
		factor: 1000000000,
	},
	PLLV3: {
		powerup:  PLLV3_POWER,
		enable:   PLLV3_ENABLE,
		stable:   PLLV3_LOCK,
		lockTime: PLLV3_LOCK_TIME,
		rule:     rateDivSelect,
		prepares: true,
	},
}

// PLL drives one hardware PLL's control register: power-up and lock-wait
// sequencing, output gating, and rate computation. The bit layout is
// picked once, at construction, from the kind table.
type PLL struct {
	clk.Base
	regs *mmio.Regs
	off  uint32
	kind PLLKind
	p    pllParams
}

// NewPLL builds the state machine for the PLL whose control register sits
// at byte offset off in regs.
func NewPLL(kind PLLKind, name, parent string, regs *mmio.Regs, off uint32) (*PLL, error) {
	p, ok := pllKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%s: unknown PLL kind %d", name, kind)
	}
	return &PLL{clk.NewBase(name, []string{parent}, 0), regs, off, kind, p}, nil
}

func (pll *PLL) IsPrepared() bool {
	if !pll.p.prepares {
		return true
	}
	v := pll.regs.Read(pll.off)
	return v&pll.p.stable != 0 && v&pll.p.powerup != 0
}

// Prepare powers the PLL's analog core up and waits for its lock. Already
// powered-up is a no-op. On a lock timeout the power-up bit stays
// asserted; the caller must Unprepare before retrying - there are no
// internal retries.
func (pll *PLL) Prepare() error {
	if !pll.p.prepares {
		return nil
	}
	v := pll.regs.Read(pll.off)
	if v&pll.p.powerup != 0 {
		return nil
	}

	v &^= pll.p.stable
	v |= pll.p.gate
	v &^= pll.p.enable
	pll.regs.Write(pll.off, v)

	time.Sleep(pllSettleTime)

	v |= pll.p.powerup | pll.p.holdRingOff
	pll.regs.Write(pll.off, v)

	// Half the lock time with the ring held off, then release it and
	// poll for the lock proper.
	time.Sleep(pll.p.lockTime / 2)

	v &^= pll.p.holdRingOff
	pll.regs.Write(pll.off, v)

	if !pll.regs.PollSet(pll.off, pll.p.stable, pllPollInterval, pll.p.lockTime) {
		return fmt.Errorf("%s: %w", pll.Name(), clk.ErrLockTimeout)
	}
	return nil
}

// Unprepare forces the PLL unpowered from any state: output gated, enable
// and power-up cleared in a single write.
func (pll *PLL) Unprepare() {
	if !pll.p.prepares {
		return
	}
	v := pll.regs.Read(pll.off) &^ pll.p.stable
	v |= pll.p.gate
	v &^= pll.p.enable | pll.p.powerup
	pll.regs.Write(pll.off, v)
}

// Enable asserts the enable bit, then releases the output gate, as two
// separate writes. Enabling a PLL that was never powered up is an invalid
// state, not a sequencing the hardware will perform; the register is left
// untouched.
func (pll *PLL) Enable() error {
	v := pll.regs.Read(pll.off)
	if pll.p.prepares && v&pll.p.powerup == 0 {
		return fmt.Errorf("%s: enable before power-up: %w", pll.Name(), clk.ErrInvalidState)
	}
	if v&pll.p.enable == 0 {
		v |= pll.p.enable
		pll.regs.Write(pll.off, v)
	}
	if v&pll.p.gate != 0 {
		v &^= pll.p.gate
		pll.regs.Write(pll.off, v)
	}
	return nil
}

// Disable clears the enable bit and re-asserts the output gate. Power-up
// state is untouched: the PLL drops back to stable, not unpowered - only
// Unprepare clears power-up.
func (pll *PLL) Disable() error {
	v := pll.regs.Read(pll.off)
	v &^= pll.p.enable
	v |= pll.p.gate
	pll.regs.Write(pll.off, v)
	return nil
}

func (pll *PLL) IsEnabled() bool {
	v := pll.regs.Read(pll.off)
	if v&pll.p.gate != 0 {
		return false
	}
	if v&pll.p.stable == 0 || v&pll.p.enable == 0 {
		return false
	}
	if pll.p.powerup != 0 && v&pll.p.powerup == 0 {
		return false
	}
	return true
}

func (pll *PLL) RecalcRate(parentRate uint64) uint64 {
	switch pll.p.rule {
	case rateArm:
		v := pll.regs.Read(pll.off)
		div := uint64(v&pll.p.divMask) >> pll.p.divShift
		pdiv := (v & pll.p.pdivMask) >> pll.p.pdivShift
		if int(pdiv) >= len(pdivLookup) {
			return 0
		}
		return parentRate * (div / 2) / pdivLookup[pdiv]
	case rateFactor:
		return parentRate * pll.p.factor
	case rateDivSelect:
		if pll.regs.Read(pll.off)&PLLV3_DIV_SELECT_MASK != 0 {
			return parentRate * 22
		}
		return parentRate * 20
	default: // rateConst
		return pll.p.factor
	}
}

// RoundRate reports the only rate the PLL can produce from parentRate: the
// multiplier is wired in hardware.
func (pll *PLL) RoundRate(rate, parentRate uint64) uint64 {
	return pll.RecalcRate(parentRate)
}

// SetRate accepts exactly the rate the fixed multiplier already produces
// and rejects everything else; the multiplier is not adjustable at
// runtime.
func (pll *PLL) SetRate(rate, parentRate uint64) error {
	switch pll.p.rule {
	case rateFactor, rateDivSelect:
		if rate == pll.RecalcRate(parentRate) {
			return nil
		}
	}
	return fmt.Errorf("%s: can't produce %d Hz: %w", pll.Name(), rate, clk.ErrInvalidState)
}
