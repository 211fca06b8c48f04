package ccm

import (
	"fmt"

	"github.com/EmcraftSystems/imxrt-ccm/clk"
	"github.com/EmcraftSystems/imxrt-ccm/mmio"
)

// Config locates the controller's register windows and supplies the fixed
// oscillator inputs the hardware description declares. The windows come
// pre-mapped (mmio.Map on hardware, mmio.NewRegs in tests); parsing the
// hardware description itself is the platform's business, not ours.
type Config struct {
	CCM    *mmio.Regs // clock controller module window
	Anatop *mmio.Regs // ANADIG/ANATOP (PLL) window

	OscRate      uint64 // "osc" crystal, typically 24 MHz
	Rcosc16MRate uint64 // internal RC oscillator (RT1170 only)
}

// CCM is a published clock provider: the lookup surface downstream
// peripheral drivers resolve their clocks through.
type CCM struct {
	variant Variant
	reg     *clk.Registry
}

// Setup brings the variant's whole clock tree up: it constructs every node
// in dependency order, registers it under its identifier, validates that
// the identifier space has no holes, resolves parent names, and publishes
// the result. Setup runs exactly once per boot, on one goroutine. Any
// failure unregisters everything constructed so far and returns it.
func Setup(v Variant, cfg Config) (*CCM, error) {
	if cfg.CCM == nil || cfg.Anatop == nil {
		return nil, fmt.Errorf("%v: missing register window", v)
	}
	var (
		reg *clk.Registry
		err error
	)
	switch v {
	case VariantRT1170:
		reg, err = setupRT1170(cfg)
	case VariantRT1020:
		reg, err = setupRT1020(cfg)
	default:
		return nil, fmt.Errorf("unsupported SoC variant %d", int(v))
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't set up %v clock tree: %w", v, err)
	}
	return &CCM{variant: v, reg: reg}, nil
}

func (c *CCM) Variant() Variant {
	return c.variant
}

// Registry exposes the underlying clock table for consumers that hold
// identifiers.
func (c *CCM) Registry() *clk.Registry {
	return c.reg
}

// Lookup returns the clock registered under the given identifier.
func (c *CCM) Lookup(id int) (clk.Clock, error) {
	return c.reg.Lookup(id)
}

// LookupName returns the clock registered under the given name.
func (c *CCM) LookupName(name string) (clk.Clock, error) {
	return c.reg.LookupName(name)
}

// Rate returns the clock's current output rate in Hz.
func (c *CCM) Rate(id int) (uint64, error) {
	return c.reg.Rate(id)
}

// PrepareEnable turns the clock on, bringing up its whole ancestor chain
// first.
func (c *CCM) PrepareEnable(id int) error {
	return c.reg.PrepareEnable(id)
}

// Disable gates the clock. Critical clocks refuse.
func (c *CCM) Disable(id int) error {
	return c.reg.Disable(id)
}
