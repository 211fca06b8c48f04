// Package clk implements a small clock framework: a common clock-node
// interface, the basic node types (fixed rate, fixed factor, gate, mux,
// divider and the mux+divider+gate composite), and a registry that owns
// every node of a provider, indexed by a dense numeric identifier.
//
// Nodes reference their parents by name only. The registry resolves names
// to indices once, when the provider publishes; nodes never own each
// other.
package clk

import "errors"

// Flags adjust how the framework treats a clock.
type Flags uint32

const (
	// Critical marks clocks feeding the core processor, system bus or
	// memory controller. The registry refuses to disable them.
	Critical Flags = 1 << iota
)

var (
	// ErrInvalidState means an operation was requested in a state that
	// can't serve it, e.g. enabling a PLL that was never powered up.
	ErrInvalidState = errors.New("operation invalid in current state")

	// ErrLockTimeout means a PLL's stable bit wasn't observed within its
	// deadline. The power-up bit is left asserted; the caller must
	// unprepare before retrying.
	ErrLockTimeout = errors.New("timed out waiting for stable bit")

	// ErrMissingEntry means a hole in the dense clock table: an
	// identifier left unpopulated after construction, or a parent name
	// that resolves to nothing.
	ErrMissingEntry = errors.New("unpopulated clock table entry")

	// ErrRegistration means registering a node into the table failed.
	ErrRegistration = errors.New("clock registration failed")
)

// Clock is one node of the clock tree. Concrete types embed Base to pick
// up default hooks for the operations they don't implement.
type Clock interface {
	Name() string
	Flags() Flags

	// Parents returns the candidate parent names. Fixed sources return
	// nil; everything except selectors has exactly one entry.
	Parents() []string

	// ParentIndex returns which of Parents currently feeds the clock.
	// Single-parent clocks always return 0. Selectors read it from
	// hardware, so the result may fall outside Parents for a register
	// field the topology doesn't use.
	ParentIndex() int

	Prepare() error
	Unprepare()
	Enable() error
	Disable() error
	IsPrepared() bool
	IsEnabled() bool

	// RecalcRate returns the output rate in Hz for the given parent
	// rate. It is a pure function of current register contents and
	// parentRate. A rate of 0 means "not computable from the current
	// register state", not "clock stopped".
	RecalcRate(parentRate uint64) uint64
}

// RateClock is the subset of clocks whose rate can be requested.
type RateClock interface {
	Clock
	RoundRate(rate, parentRate uint64) uint64
	SetRate(rate, parentRate uint64) error
}

// Base carries the identity common to all nodes and supplies no-op hooks.
type Base struct {
	name    string
	parents []string
	flags   Flags
}

func NewBase(name string, parents []string, flags Flags) Base {
	return Base{name, parents, flags}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Flags() Flags {
	return b.flags
}

func (b *Base) Parents() []string {
	return b.parents
}

func (b *Base) ParentIndex() int {
	return 0
}

func (b *Base) Prepare() error {
	return nil
}

func (b *Base) Unprepare() {
}

func (b *Base) Enable() error {
	return nil
}

func (b *Base) Disable() error {
	return nil
}

func (b *Base) IsPrepared() bool {
	return true
}

func (b *Base) IsEnabled() bool {
	return true
}

func (b *Base) RecalcRate(parentRate uint64) uint64 {
	return parentRate
}
