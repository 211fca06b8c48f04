package ccm

import (
	"github.com/EmcraftSystems/imxrt-ccm/clk"
)

// Dense clock identifiers for the RT1020 tree.
const (
	Clk1020Dummy = iota
	Clk1020Osc
	Clk1020Pll2Sys
	Clk1020Pll3UsbOtg
	Clk1020Pll2Bypass
	Clk1020Pll3Bypass
	Clk1020Pll380M
	Clk1020Pll2Pfd0
	Clk1020Pll2Pfd1
	Clk1020Pll2Pfd2
	Clk1020Pll2Pfd3
	Clk1020Pll3Pfd1
	Clk1020Pll3Pfd3
	Clk1020PrePeriphSel
	Clk1020PeriphSel
	Clk1020Usdhc1Sel
	Clk1020Usdhc2Sel
	Clk1020LpuartSel
	Clk1020SemcAltSel
	Clk1020SemcSel
	Clk1020Ahb
	Clk1020Ipg
	Clk1020PerclkSel
	Clk1020Per
	Clk1020Usdhc1Podf
	Clk1020Usdhc2Podf
	Clk1020LpuartPodf
	Clk1020SemcPodf
	Clk1020Usdhc1
	Clk1020Usdhc2
	Clk1020Lpuart1
	Clk1020Semc
	Clk1020Usboh3
	Clk1020End
)

// ANATOP register byte offsets for the 1020 family layout.
const (
	rt1020Pll3Ctrl = 0x10
	rt1020Pll2Ctrl = 0x30
	rt1020Pll3Pfds = 0xf0
	rt1020Pll2Pfds = 0x100
)

var (
	rt1020Pll2BypassSels = []string{"pll2_sys", "osc"}
	rt1020Pll3BypassSels = []string{"pll3_usb_otg", "osc"}

	rt1020PrePeriphSels = []string{"pll2_sys", "pll2_pfd3_297m", "pll3_pfd3_454_74m", "arm_podf"}
	rt1020PeriphSels    = []string{"pre_periph_sel", "todo"}
	rt1020UsdhcSels     = []string{"pll2_pfd2_396m", "pll2_pfd0_352m"}
	rt1020LpuartSels    = []string{"pll3_80m", "osc"}
	rt1020SemcAltSels   = []string{"pll2_pfd2_396m", "pll3_pfd1_664_62m"}
	rt1020SemcSels      = []string{"periph_sel", "semc_alt_sel"}
	rt1020PerclkSels    = []string{"ipg", "osc"}
)

func setupRT1020(cfg Config) (*clk.Registry, error) {
	reg := clk.NewRegistry(Clk1020End)
	b := newBuilder(reg)

	b.add(Clk1020Dummy, clk.NewFixed("dummy", 0))
	b.add(Clk1020Osc, clk.NewFixed("osc", cfg.OscRate))

	// ANATOP: two pllv3-style PLLs, their bypass muxes sharing the PLL
	// control register, and the fractional dividers beneath them.
	b.addPLL(Clk1020Pll2Sys, PLLV3, "pll2_sys", "osc", cfg.Anatop, rt1020Pll2Ctrl)
	b.addPLL(Clk1020Pll3UsbOtg, PLLV3, "pll3_usb_otg", "osc", cfg.Anatop, rt1020Pll3Ctrl)
	b.add(Clk1020Pll2Bypass, clk.NewMux("pll2_bypass", rt1020Pll2BypassSels,
		cfg.Anatop, rt1020Pll2Ctrl, 16, 1, 0))
	b.add(Clk1020Pll3Bypass, clk.NewMux("pll3_bypass", rt1020Pll3BypassSels,
		cfg.Anatop, rt1020Pll3Ctrl, 16, 1, 0))

	b.add(Clk1020Pll380M, clk.NewFixedFactor("pll3_80m", "pll3_usb_otg", 1, 6))

	b.addPFD(Clk1020Pll2Pfd0, "pll2_pfd0_352m", "pll2_sys", cfg.Anatop, rt1020Pll2Pfds, 0)
	b.addPFD(Clk1020Pll2Pfd1, "pll2_pfd1_594m", "pll2_sys", cfg.Anatop, rt1020Pll2Pfds, 1)
	b.addPFD(Clk1020Pll2Pfd2, "pll2_pfd2_396m", "pll2_sys", cfg.Anatop, rt1020Pll2Pfds, 2)
	b.addPFD(Clk1020Pll2Pfd3, "pll2_pfd3_297m", "pll2_sys", cfg.Anatop, rt1020Pll2Pfds, 3)
	b.addPFD(Clk1020Pll3Pfd1, "pll3_pfd1_664_62m", "pll3_usb_otg", cfg.Anatop, rt1020Pll3Pfds, 1)
	b.addPFD(Clk1020Pll3Pfd3, "pll3_pfd3_454_74m", "pll3_usb_otg", cfg.Anatop, rt1020Pll3Pfds, 3)

	// CCM: selectors, dividers, then the CCGR peripheral gates.
	b.add(Clk1020PrePeriphSel, clk.NewMux("pre_periph_sel", rt1020PrePeriphSels,
		cfg.CCM, 0x18, 18, 2, 0))
	b.add(Clk1020PeriphSel, clk.NewMux("periph_sel", rt1020PeriphSels,
		cfg.CCM, 0x14, 25, 1, 0))
	b.add(Clk1020Usdhc1Sel, clk.NewMux("usdhc1_sel", rt1020UsdhcSels,
		cfg.CCM, 0x1c, 16, 1, 0))
	b.add(Clk1020Usdhc2Sel, clk.NewMux("usdhc2_sel", rt1020UsdhcSels,
		cfg.CCM, 0x1c, 17, 1, 0))
	b.add(Clk1020LpuartSel, clk.NewMux("lpuart_sel", rt1020LpuartSels,
		cfg.CCM, 0x24, 6, 1, 0))
	b.add(Clk1020SemcAltSel, clk.NewMux("semc_alt_sel", rt1020SemcAltSels,
		cfg.CCM, 0x14, 7, 1, 0))
	b.add(Clk1020SemcSel, clk.NewMux("semc_sel", rt1020SemcSels,
		cfg.CCM, 0x14, 6, 1, clk.Critical))

	b.add(Clk1020Ahb, clk.NewDivider("ahb", "periph_sel", cfg.CCM, 0x14, 10, 3, 0))
	b.add(Clk1020Ipg, clk.NewDivider("ipg", "ahb", cfg.CCM, 0x14, 8, 2, 0))

	b.add(Clk1020PerclkSel, clk.NewMux("perclk_sel", rt1020PerclkSels,
		cfg.CCM, 0x1c, 6, 1, 0))
	b.add(Clk1020Per, clk.NewDivider("per", "perclk_sel", cfg.CCM, 0x1c, 0, 5, 0))

	b.add(Clk1020Usdhc1Podf, clk.NewDivider("usdhc1_podf", "usdhc1_sel", cfg.CCM, 0x24, 11, 3, 0))
	b.add(Clk1020Usdhc2Podf, clk.NewDivider("usdhc2_podf", "usdhc2_sel", cfg.CCM, 0x24, 16, 3, 0))
	b.add(Clk1020LpuartPodf, clk.NewDivider("lpuart_podf", "lpuart_sel", cfg.CCM, 0x24, 0, 6, 0))
	b.add(Clk1020SemcPodf, clk.NewDivider("semc_podf", "semc_sel", cfg.CCM, 0x14, 16, 3, 0))

	b.add(Clk1020Usdhc1, newGate2("usdhc1", "usdhc1_podf", cfg.CCM, 0x80, 2, 0))
	b.add(Clk1020Usdhc2, newGate2("usdhc2", "usdhc2_podf", cfg.CCM, 0x80, 4, 0))
	b.add(Clk1020Lpuart1, newGate2("lpuart1", "lpuart_podf", cfg.CCM, 0x7c, 24, 0))
	b.add(Clk1020Semc, newGate2("semc", "semc_podf", cfg.CCM, 0x74, 4, clk.Critical))
	b.add(Clk1020Usboh3, newGate2("usboh3", "ipg", cfg.CCM, 0x80, 0, 0))

	return b.finish()
}
