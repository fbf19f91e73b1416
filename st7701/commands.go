// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import "time"

// System function commands.
const (
	sleepIn    byte = 0x10
	sleepOut   byte = 0x11
	displayOff byte = 0x28
	displayOn  byte = 0x29
	madctl     byte = 0x36
	colmod     byte = 0x3A
)

// Command2 bank 0 (BK0) commands.
const (
	pvgamctrl byte = 0xB0 // Positive voltage gamma control
	nvgamctrl byte = 0xB1 // Negative voltage gamma control
	lneset    byte = 0xC0 // Display line setting
	porctrl   byte = 0xC1 // Porch control
	invset    byte = 0xC2 // Inversion selection and frame rate control
	rgbctrl   byte = 0xCC // Undocumented in the S revision, vendor code sets it
	colctrl   byte = 0xCD // Color control
)

// Command2 bank 1 (BK1) commands.
const (
	vrhs     byte = 0xB0 // Vop amplitude
	vcoms    byte = 0xB1 // VCOM amplitude
	vghss    byte = 0xB2 // VGH voltage
	testcmd  byte = 0xB3
	vgls     byte = 0xB5 // VGL voltage
	pwctrl1  byte = 0xB7
	pwctrl2  byte = 0xB8
	spd1     byte = 0xC1 // Source pre-drive timing 1
	spd2     byte = 0xC2 // Source pre-drive timing 2
	mipiset1 byte = 0xD0
)

// Gate EQ and timing registers, BK1 and BK3.
const (
	sectrl  byte = 0xE0
	e1      byte = 0xE1
	e2      byte = 0xE2
	e3      byte = 0xE3
	e4      byte = 0xE4
	e5      byte = 0xE5
	e6      byte = 0xE6
	e7      byte = 0xE7
	e8      byte = 0xE8
	eb      byte = 0xEB
	ed      byte = 0xED
	ef      byte = 0xEF
	bkxSel  byte = 0xFF // Command2 BKx selection
	bkxNone byte = 0x00
	bk0     byte = 0x10
	bk1     byte = 0x11
	bk3     byte = 0x13
)

// Mandatory waits after some commands. They apply even when the command table
// is replaced through Opts.Commands.
var settleAfter = map[byte]time.Duration{
	sleepOut:  100 * time.Millisecond,
	sleepIn:   120 * time.Millisecond,
	displayOn: 50 * time.Millisecond,
}

// Command is one register write: an opcode followed by zero or more
// parameters.
type Command struct {
	Op     byte
	Params []byte
	// Delay is waited after the command was sent.
	Delay time.Duration
}

// PixelFormat is the COLMOD value describing the RGB interface bus width.
type PixelFormat byte

// Pixel formats of the RGB interface.
const (
	RGB565 PixelFormat = 0x50
	RGB666 PixelFormat = 0x60
	RGB888 PixelFormat = 0x70
)

func (p PixelFormat) String() string {
	switch p {
	case RGB565:
		return "RGB565"
	case RGB666:
		return "RGB666"
	case RGB888:
		return "RGB888"
	default:
		return "PixelFormat(?)"
	}
}

func selectBank(bk byte) Command {
	return Command{Op: bkxSel, Params: []byte{0x77, 0x01, 0x00, 0x00, bk}}
}

// InitSequence returns the register table for the 480x480 panel, ending with
// sleep-out and display-on.
//
// The values come from the panel vendor and are specific to the glass; other
// panels will need their own table in Opts.Commands.
func InitSequence(pf PixelFormat, madctlValue byte) []Command {
	return []Command{
		selectBank(bk0),
		{Op: lneset, Params: []byte{0x3B, 0x00}},
		{Op: porctrl, Params: []byte{0x0B, 0x02}}, // VBP
		{Op: invset, Params: []byte{0x00, 0x02}},
		{Op: rgbctrl, Params: []byte{0x10}},
		{Op: colctrl, Params: []byte{0x08}},
		{Op: pvgamctrl, Params: []byte{
			0x02, 0x13, 0x1B, 0x0D, 0x10, 0x05, 0x08, 0x07,
			0x07, 0x24, 0x04, 0x11, 0x0E, 0x2C, 0x33, 0x1D,
		}},
		{Op: nvgamctrl, Params: []byte{
			0x05, 0x13, 0x1B, 0x0D, 0x11, 0x05, 0x08, 0x07,
			0x07, 0x24, 0x04, 0x11, 0x0E, 0x2C, 0x33, 0x1D,
		}},

		selectBank(bk1),
		{Op: vrhs, Params: []byte{0x5D}},
		{Op: vcoms, Params: []byte{0x43}},
		{Op: vghss, Params: []byte{0x81}}, // 12V
		{Op: testcmd, Params: []byte{0x80}},
		{Op: vgls, Params: []byte{0x43}}, // -8.3V
		{Op: pwctrl1, Params: []byte{0x85}},
		{Op: pwctrl2, Params: []byte{0x20}},
		{Op: spd1, Params: []byte{0x78}},
		{Op: spd2, Params: []byte{0x78}},
		{Op: mipiset1, Params: []byte{0x88}},
		{Op: sectrl, Params: []byte{0x00, 0x00, 0x02}},
		{Op: e1, Params: []byte{
			0x03, 0xA0, 0x00, 0x00, 0x04, 0xA0, 0x00, 0x00,
			0x00, 0x20, 0x20,
		}},
		{Op: e2, Params: make([]byte, 13)},
		{Op: e3, Params: []byte{0x00, 0x00, 0x11, 0x00}},
		{Op: e4, Params: []byte{0x22, 0x00}},
		{Op: e5, Params: []byte{
			0x05, 0xEC, 0xA0, 0xA0, 0x07, 0xEE, 0xA0, 0xA0,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		}},
		{Op: e6, Params: []byte{0x00, 0x00, 0x11, 0x00}},
		{Op: e7, Params: []byte{0x22, 0x00}},
		{Op: e8, Params: []byte{
			0x06, 0xED, 0xA0, 0xA0, 0x08, 0xEF, 0xA0, 0xA0,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		}},
		{Op: eb, Params: []byte{0x00, 0x00, 0x40, 0x40, 0x00, 0x00, 0x00}},
		{Op: ed, Params: []byte{
			0xFF, 0xFF, 0xFF, 0xBA, 0x0A, 0xBF, 0x45, 0xFF,
			0xFF, 0x54, 0xFB, 0xA0, 0xAB, 0xFF, 0xFF, 0xFF,
		}},
		{Op: ef, Params: []byte{0x10, 0x0D, 0x04, 0x08, 0x3F, 0x1F}},

		selectBank(bk3),
		{Op: ef, Params: []byte{0x08}},

		selectBank(bkxNone),
		{Op: madctl, Params: []byte{madctlValue}},
		{Op: colmod, Params: []byte{byte(pf)}},
		{Op: sleepOut, Delay: settleAfter[sleepOut]},
		{Op: displayOn, Delay: settleAfter[displayOn]},
	}
}
