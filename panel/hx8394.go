// Package panel drives MIPI DSI display panels through a caller-supplied
// packet transport. The panel init tables are manufacturer blobs; the byte
// values come from the panel vendor and are not documented further.
package panel

import (
	"fmt"
	"time"
)

// PacketType is a MIPI DSI packet data type identifier as it appears in
// the packet header.
type PacketType byte

const (
	GENERIC_SHORT_WRITE_0 PacketType = 0x03
	GENERIC_SHORT_WRITE_1 PacketType = 0x13
	GENERIC_SHORT_WRITE_2 PacketType = 0x23
	GENERIC_LONG_WRITE    PacketType = 0x29
	DCS_SHORT_WRITE       PacketType = 0x05
)

// DCS command bytes used during power-up.
const (
	DCS_EXIT_SLEEP_MODE = 0x11
	DCS_SET_DISPLAY_ON  = 0x29
)

// HX8394 user-defined command set. Commands not used by the init table
// are omitted.
const (
	SETADDRESSMODE = 0x36
	SETPOWER       = 0xB1
	SETDISP        = 0xB2
	SETCYC         = 0xB4
	SETVCOM        = 0xB6
	SETEXTC        = 0xB9
	SETMIPI        = 0xBA
	SETREGBANK     = 0xBD
	SETPANEL       = 0xCC
	SETGIP0        = 0xD3
	SETGIP1        = 0xD5
	SETGIP2        = 0xD6
	SETGAMMA       = 0xE0
)

// Transport sends one DSI packet. For short writes data holds the one or
// two payload bytes; for long writes it holds the full payload including
// the leading command byte.
type Transport interface {
	WritePacket(typ PacketType, data []byte) error
}

// VideoMode describes the timing the panel expects, margins in pixel
// clocks and lines.
type VideoMode struct {
	Name        string
	Refresh     uint // Hz
	XRes        uint
	YRes        uint
	PixClockKHz uint
	LeftMargin  uint
	RightMargin uint
	UpperMargin uint
	LowerMargin uint
	HSyncLen    uint
	VSyncLen    uint
}

// LaneConfig describes the DSI link the panel is wired for.
type LaneConfig struct {
	VirtualChannel uint
	Lanes          uint
	MaxPhyClockMHz uint
	Format         PixelFormat
}

type PixelFormat int

const (
	RGB565 PixelFormat = iota
	RGB666
	RGB888
)

// HX8394 is a Himax HX8394-F 720x1280 panel behind a two-lane DSI link.
type HX8394 struct {
	t Transport
}

func NewHX8394(t Transport) *HX8394 {
	return &HX8394{t: t}
}

func (p *HX8394) Mode() VideoMode {
	return VideoMode{
		Name:        "hx8394",
		Refresh:     60,
		XRes:        720,
		YRes:        1280,
		PixClockKHz: 66000,
		LeftMargin:  10,
		RightMargin: 52,
		UpperMargin: 7,
		LowerMargin: 16,
		HSyncLen:    52,
		VSyncLen:    16,
	}
}

func (p *HX8394) Lanes() LaneConfig {
	return LaneConfig{
		VirtualChannel: 0,
		Lanes:          2,
		MaxPhyClockMHz: 800,
		Format:         RGB888,
	}
}

// Vendor init sequence, sent verbatim before leaving sleep mode.
var hx8394SetupCmds = [][]byte{
	{SETEXTC, 0xFF, 0x83, 0x94},

	{SETMIPI, 0x61, 0x03, 0x68, 0x6B, 0xB2, 0xC0},

	{SETADDRESSMODE, 0x02},

	{SETPOWER, 0x48, 0x12, 0x72, 0x09, 0x32, 0x54, 0x71, 0x71, 0x57, 0x47},

	{SETDISP, 0x00, 0x80, 0x64, 0x15, 0x0E, 0x11},

	{SETCYC, 0x73, 0x74, 0x73, 0x74, 0x73, 0x74, 0x01, 0x0C, 0x86,
		0x75, 0x00, 0x3F, 0x73, 0x74, 0x73, 0x74, 0x73, 0x74, 0x01,
		0x0C, 0x86},

	{SETGIP0, 0x00, 0x00, 0x07, 0x07, 0x40, 0x07, 0x0C, 0x00, 0x08,
		0x10, 0x08, 0x00, 0x08, 0x54, 0x15, 0x0A, 0x05, 0x0A, 0x02,
		0x15, 0x06, 0x05, 0x06, 0x47, 0x44, 0x0A, 0x0A, 0x4B, 0x10,
		0x07, 0x07, 0x0C, 0x40},

	{SETGIP1, 0x1C, 0x1C, 0x1D, 0x1D, 0x00, 0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x24, 0x25, 0x18,
		0x18, 0x26, 0x27, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18,
		0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x20,
		0x21, 0x18, 0x18, 0x18, 0x18},

	{SETGIP2, 0x1C, 0x1C, 0x1D, 0x1D, 0x07, 0x06, 0x05, 0x04, 0x03,
		0x02, 0x01, 0x00, 0x0B, 0x0A, 0x09, 0x08, 0x21, 0x20, 0x18,
		0x18, 0x27, 0x26, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18,
		0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x25,
		0x24, 0x18, 0x18, 0x18, 0x18},

	{SETVCOM, 0x92, 0x92},

	{SETGAMMA, 0x00, 0x0A, 0x15, 0x1B, 0x1E, 0x21, 0x24, 0x22, 0x47,
		0x56, 0x65, 0x66, 0x6E, 0x82, 0x88, 0x8B, 0x9A, 0x9D, 0x98,
		0xA8, 0xB9, 0x5D, 0x5C, 0x61, 0x66, 0x6A, 0x6F, 0x7F, 0x7F,
		0x00, 0x0A, 0x15, 0x1B, 0x1E, 0x21, 0x24, 0x22, 0x47, 0x56,
		0x65, 0x65, 0x6E, 0x81, 0x87, 0x8B, 0x98, 0x9D, 0x99, 0xA8,
		0xBA, 0x5D, 0x5D, 0x62, 0x67, 0x6B, 0x72, 0x7F, 0x7F},

	{0xC0, 0x1F, 0x31},
	{SETPANEL, 0x03},
	{0xD4, 0x02},
	{SETREGBANK, 0x02},

	{0xD8, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF},

	{SETREGBANK, 0x00},
	{SETREGBANK, 0x01},
	{SETPOWER, 0x00},
	{SETREGBANK, 0x00},

	{0xBF, 0x40, 0x81, 0x50, 0x00, 0x1A, 0xFC, 0x01},
	{0xC6, 0xED},
	{0x35, 0x00},
}

// genericWrite picks the generic packet type from the payload length.
func genericWrite(t Transport, buf []byte) error {
	switch {
	case len(buf) > 2:
		return t.WritePacket(GENERIC_LONG_WRITE, buf)
	case len(buf) == 2:
		return t.WritePacket(GENERIC_SHORT_WRITE_2, buf)
	case len(buf) == 1:
		return t.WritePacket(GENERIC_SHORT_WRITE_1, buf)
	default:
		return t.WritePacket(GENERIC_SHORT_WRITE_0, buf)
	}
}

// Setup sends the vendor init table, wakes the panel from sleep and turns
// the display on. The 5ms pause after exiting sleep lets the supply
// voltages and clock circuits stabilize.
func (p *HX8394) Setup() error {
	for i, cmd := range hx8394SetupCmds {
		if err := genericWrite(p.t, cmd); err != nil {
			return fmt.Errorf("couldn't send init command %d (reg 0x%02x): %v", i, cmd[0], err)
		}
	}

	if err := p.t.WritePacket(DCS_SHORT_WRITE, []byte{DCS_EXIT_SLEEP_MODE, 0}); err != nil {
		return fmt.Errorf("couldn't exit sleep mode: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := p.t.WritePacket(DCS_SHORT_WRITE, []byte{DCS_SET_DISPLAY_ON, 0}); err != nil {
		return fmt.Errorf("couldn't set display on: %v", err)
	}
	return nil
}
