package ccm

import (
	"github.com/EmcraftSystems/imxrt-ccm/clk"
)

// Dense clock identifiers for the RT1170 tree. Clk1170End terminates the
// space and sizes the handle table; every id below it must be registered.
const (
	Clk1170Dummy = iota
	Clk1170Osc
	Clk1170Rcosc16M
	Clk1170Rcosc48M
	Clk1170Rcosc48MDiv2
	Clk1170Rcosc400M
	Clk1170PllArm
	Clk1170Pll1
	Clk1170Pll2
	Clk1170Pll3
	Clk1170Pll2Pfd0
	Clk1170Pll2Pfd1
	Clk1170Pll2Pfd2
	Clk1170Pll2Pfd3
	Clk1170Pll3Pfd0
	Clk1170Pll3Pfd1
	Clk1170Pll3Pfd2
	Clk1170Pll3Pfd3
	Clk1170Pll1Div2
	Clk1170Pll1Div5
	Clk1170Pll3Div2
	Clk1170RootM7
	Clk1170RootBus
	Clk1170RootBusLpsr
	Clk1170RootSemc
	Clk1170RootGpt1
	Clk1170RootLpuart1
	Clk1170RootLpi2c1
	Clk1170RootLpi2c2
	Clk1170RootLpi2c3
	Clk1170RootLpi2c4
	Clk1170RootLpi2c5
	Clk1170RootLpi2c6
	Clk1170RootEnet1
	Clk1170RootUsdhc1
	Clk1170RootElcdif
	Clk1170RootMipiRef
	Clk1170RootMipiEsc
	Clk1170M7
	Clk1170Edma
	Clk1170Semc
	Clk1170Gpt1
	Clk1170Lpuart1
	Clk1170Lpi2c1
	Clk1170Lpi2c2
	Clk1170Lpi2c3
	Clk1170Lpi2c4
	Clk1170Lpi2c5
	Clk1170Lpi2c6
	Clk1170Enet1
	Clk1170Usb
	Clk1170Usdhc1
	Clk1170Elcdif
	Clk1170MipiDsi
	Clk1170MipiTxEsc
	Clk1170End
)

// ANATOP register byte offsets. These are hardware constants, not derived.
const (
	rt1170PllArmCtrl = 0x200
	rt1170Pll3Ctrl   = 0x210
	rt1170Pll3Pfds   = 0x230
	rt1170Pll2Ctrl   = 0x240
	rt1170Pll2Pfds   = 0x270
	rt1170Pll1Ctrl   = 0x2c0
)

// CCM register layout: one root control register every 0x80 from 0, one
// peripheral (LPCG) gate register every 0x20 from 0x6000, one clock group
// control register every 0x80 from 0x4000.
const (
	rt1170RootStride = 0x80
	rt1170GateBase   = 0x6000
	rt1170GateStride = 0x20

	cgcBase          = 0x4000
	cgcStride        = 0x80
	CGC_DIV0_SHIFT   = 0
	CGC_RSTDIV_SHIFT = 16
	CGC_OFF_SHIFT    = 24
)

func rt1170ClockGroupControl(grp uint32) uint32 {
	return cgcBase + grp*cgcStride
}

// Every root shares the same first four parent candidates.
func rt1170Sels(specific ...string) []string {
	sels := []string{"rcosc48M_div2", "osc", "rcosc400M", "rcosc16M"}
	return append(sels, specific...)
}

var (
	rt1170M7Sels      = rt1170Sels("pll_arm", "pll1_sys", "pll3_sys", "video_pll")
	rt1170BusSels     = rt1170Sels("pll3_sys", "pll1_div5", "pll2_sys", "pll2_pfd3")
	rt1170BusLpsrSels = rt1170Sels("pll3_pfd3", "pll3_sys", "pll2_sys", "pll1_div5")
	rt1170Lpuart1Sels = rt1170Sels("pll3_div2", "pll1_div5", "pll2_sys", "pll2_pfd3")
	rt1170Gpt1Sels    = rt1170Sels("pll3_div2", "pll1_div5", "pll3_pfd2", "pll3_pfd3")
	rt1170Usdhc1Sels  = rt1170Sels("pll2_pfd2", "pll2_pfd0", "pll1_div5", "pll_arm")
	rt1170SemcSels    = rt1170Sels("pll1_div5", "pll2_sys", "pll2_pfd1", "pll3_pfd0")
	rt1170Enet1Sels   = rt1170Sels("pll1_div2", "audio_pll", "pll1_div5", "pll2_pfd1")
	rt1170Lpi2c14Sels = rt1170Sels("pll3_div2", "pll1_div5", "pll2_sys", "pll2_pfd3")
	rt1170Lpi2c56Sels = rt1170Sels("pll3_pfd3", "pll3_sys", "pll2_pfd3", "pll1_div5")
	rt1170ElcdifSels  = rt1170Sels("pll2_sys", "pll2_pfd2", "pll3_pfd0", "video_pll")
	rt1170MipiDsiSels = rt1170Sels("pll2_sys", "pll2_pfd0", "pll3_pfd0", "video_pll")
)

type rootDesc struct {
	id      int
	name    string
	parents []string
	off     uint32
	flags   clk.Flags
}

// The register byte offsets here reproduce the hardware layout and must
// not be touched without the reference manual open.
var rt1170Roots = []rootDesc{
	{Clk1170RootM7, "m7_root", rt1170M7Sels, 0 * rt1170RootStride, clk.Critical},
	{Clk1170RootBus, "bus_root", rt1170BusSels, 2 * rt1170RootStride, clk.Critical},
	{Clk1170RootBusLpsr, "bus_lpsr_root", rt1170BusLpsrSels, 3 * rt1170RootStride, clk.Critical},
	{Clk1170RootSemc, "semc_root", rt1170SemcSels, 4 * rt1170RootStride, clk.Critical},
	{Clk1170RootGpt1, "gpt1_root", rt1170Gpt1Sels, 14 * rt1170RootStride, 0},
	{Clk1170RootLpuart1, "lpuart1_root", rt1170Lpuart1Sels, 25 * rt1170RootStride, 0},
	{Clk1170RootLpi2c1, "lpi2c1_root", rt1170Lpi2c14Sels, 37 * rt1170RootStride, 0},
	{Clk1170RootLpi2c2, "lpi2c2_root", rt1170Lpi2c14Sels, 38 * rt1170RootStride, 0},
	{Clk1170RootLpi2c3, "lpi2c3_root", rt1170Lpi2c14Sels, 39 * rt1170RootStride, 0},
	{Clk1170RootLpi2c4, "lpi2c4_root", rt1170Lpi2c14Sels, 40 * rt1170RootStride, 0},
	{Clk1170RootLpi2c5, "lpi2c5_root", rt1170Lpi2c56Sels, 41 * rt1170RootStride, 0},
	{Clk1170RootLpi2c6, "lpi2c6_root", rt1170Lpi2c56Sels, 42 * rt1170RootStride, 0},
	{Clk1170RootEnet1, "enet1_root", rt1170Enet1Sels, 51 * rt1170RootStride, 0},
	{Clk1170RootUsdhc1, "usdhc1_root", rt1170Usdhc1Sels, 58 * rt1170RootStride, 0},
	{Clk1170RootElcdif, "elcdif_root", rt1170ElcdifSels, 69 * rt1170RootStride, 0},
	{Clk1170RootMipiRef, "mipi_ref_root", rt1170MipiDsiSels, 71 * rt1170RootStride, 0},
	{Clk1170RootMipiEsc, "mipi_esc_root", rt1170MipiDsiSels, 72 * rt1170RootStride, 0},
}

type gateDesc struct {
	id     int
	name   string
	parent string
	off    uint32
	flags  clk.Flags
}

var rt1170Gates = []gateDesc{
	{Clk1170M7, "m7", "m7_root", rt1170GateBase + 0*rt1170GateStride, clk.Critical},
	{Clk1170Edma, "edma", "bus_root", rt1170GateBase + 20*rt1170GateStride, 0},
	{Clk1170Semc, "semc", "semc_root", rt1170GateBase + 33*rt1170GateStride, clk.Critical},
	{Clk1170Gpt1, "gpt1", "gpt1_root", rt1170GateBase + 64*rt1170GateStride, 0},
	{Clk1170Lpuart1, "lpuart1", "lpuart1_root", rt1170GateBase + 86*rt1170GateStride, 0},
	{Clk1170Lpi2c1, "lpi2c1", "lpi2c1_root", rt1170GateBase + 98*rt1170GateStride, 0},
	{Clk1170Lpi2c2, "lpi2c2", "lpi2c2_root", rt1170GateBase + 99*rt1170GateStride, 0},
	{Clk1170Lpi2c3, "lpi2c3", "lpi2c3_root", rt1170GateBase + 100*rt1170GateStride, 0},
	{Clk1170Lpi2c4, "lpi2c4", "lpi2c4_root", rt1170GateBase + 101*rt1170GateStride, 0},
	{Clk1170Lpi2c5, "lpi2c5", "lpi2c5_root", rt1170GateBase + 102*rt1170GateStride, 0},
	{Clk1170Lpi2c6, "lpi2c6", "lpi2c6_root", rt1170GateBase + 103*rt1170GateStride, 0},
	{Clk1170Enet1, "enet1", "enet1_root", rt1170GateBase + 112*rt1170GateStride, 0},
	{Clk1170Usb, "usb", "bus_root", rt1170GateBase + 115*rt1170GateStride, 0},
	{Clk1170Usdhc1, "usdhc1", "usdhc1_root", rt1170GateBase + 117*rt1170GateStride, 0},
	{Clk1170Elcdif, "elcdif", "elcdif_root", rt1170GateBase + 129*rt1170GateStride, 0},
	{Clk1170MipiDsi, "mipi_dsi", "mipi_ref_root", rt1170GateBase + 131*rt1170GateStride, 0},
}

func setupRT1170(cfg Config) (*clk.Registry, error) {
	reg := clk.NewRegistry(Clk1170End)
	b := newBuilder(reg)

	// Oscillators and internal fixed-ratio references.
	b.add(Clk1170Dummy, clk.NewFixed("dummy", 0))
	b.add(Clk1170Osc, clk.NewFixed("osc", cfg.OscRate))
	b.add(Clk1170Rcosc16M, clk.NewFixed("rcosc16M", cfg.Rcosc16MRate))
	b.add(Clk1170Rcosc48M, clk.NewFixedFactor("rcosc48M", "rcosc16M", 3, 1))
	b.add(Clk1170Rcosc400M, clk.NewFixedFactor("rcosc400M", "rcosc16M", 25, 1))
	b.add(Clk1170Rcosc48MDiv2, clk.NewFixedFactor("rcosc48M_div2", "rcosc48M", 1, 2))

	// PLLs. No PLL depends on another, but everything below does.
	b.addPLL(Clk1170PllArm, PLLArm, "pll_arm", "osc", cfg.Anatop, rt1170PllArmCtrl)
	b.addPLL(Clk1170Pll3, PLLSys3, "pll3_sys", "osc", cfg.Anatop, rt1170Pll3Ctrl)
	b.addPLL(Clk1170Pll2, PLLSys2, "pll2_sys", "osc", cfg.Anatop, rt1170Pll2Ctrl)
	b.addPLL(Clk1170Pll1, PLL1, "pll1_sys", "osc", cfg.Anatop, rt1170Pll1Ctrl)

	// PFDs hang off PLL2 and PLL3 only.
	b.addPFD(Clk1170Pll3Pfd0, "pll3_pfd0", "pll3_sys", cfg.Anatop, rt1170Pll3Pfds, 0)
	b.addPFD(Clk1170Pll3Pfd1, "pll3_pfd1", "pll3_sys", cfg.Anatop, rt1170Pll3Pfds, 1)
	b.addPFD(Clk1170Pll3Pfd2, "pll3_pfd2", "pll3_sys", cfg.Anatop, rt1170Pll3Pfds, 2)
	b.addPFD(Clk1170Pll3Pfd3, "pll3_pfd3", "pll3_sys", cfg.Anatop, rt1170Pll3Pfds, 3)
	b.addPFD(Clk1170Pll2Pfd0, "pll2_pfd0", "pll2_sys", cfg.Anatop, rt1170Pll2Pfds, 0)
	b.addPFD(Clk1170Pll2Pfd1, "pll2_pfd1", "pll2_sys", cfg.Anatop, rt1170Pll2Pfds, 1)
	b.addPFD(Clk1170Pll2Pfd2, "pll2_pfd2", "pll2_sys", cfg.Anatop, rt1170Pll2Pfds, 2)
	b.addPFD(Clk1170Pll2Pfd3, "pll2_pfd3", "pll2_sys", cfg.Anatop, rt1170Pll2Pfds, 3)

	// Gated fixed-ratio taps on the PLL outputs.
	b.add(Clk1170Pll3Div2, NewDivOut("pll3_div2", "pll3_sys", cfg.Anatop, rt1170Pll3Ctrl, 2, 3))
	b.add(Clk1170Pll1Div2, NewDivOut("pll1_div2", "pll1_sys", cfg.Anatop, rt1170Pll1Ctrl, 2, 25))
	b.add(Clk1170Pll1Div5, NewDivOut("pll1_div5", "pll1_sys", cfg.Anatop, rt1170Pll1Ctrl, 5, 26))

	// Roots, then the gates that name them. Table order is construction
	// order and already respects dependencies.
	for _, r := range rt1170Roots {
		b.add(r.id, newRoot(r.name, r.parents, cfg.CCM, r.off, r.flags))
	}
	for _, g := range rt1170Gates {
		b.add(g.id, clk.NewGate(g.name, g.parent, cfg.CCM, g.off, 0, g.flags))
	}
	if b.err != nil {
		reg.Unregister()
		return nil, b.err
	}

	// The MIPI DSI tx_esc divider lives in clock group control #1, which
	// the generic node model can't express. Hardwire /2 once and expose
	// the result as a fixed factor.
	cfg.CCM.Write(rt1170ClockGroupControl(1),
		1<<CGC_DIV0_SHIFT|1<<CGC_RSTDIV_SHIFT|0<<CGC_OFF_SHIFT)
	b.add(Clk1170MipiTxEsc, clk.NewFixedFactor("mipi_tx_esc", "mipi_esc_root", 1, 2))

	return b.finish()
}
