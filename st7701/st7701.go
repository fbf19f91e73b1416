// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// resetDwell is how long RST is held at each level. The controller ignores
// pulses shorter than 10µs but the panel needs the full 100ms to come back.
const resetDwell = 100 * time.Millisecond

// Opts defines the panel configuration.
type Opts struct {
	// Commands replaces the register table sent by Init. Nil uses
	// InitSequence(PixelFormat, MADCTL).
	Commands []Command
	// PixelFormat is the RGB interface format.
	PixelFormat PixelFormat
	// MADCTL is the memory data access control value: bit 3 selects BGR order.
	MADCTL byte
	// Sleeper implements reset and settle delays. Defaults to DefaultSleeper.
	Sleeper Sleeper
}

// DefaultOpts is the configuration of the 480x480 panel.
var DefaultOpts = Opts{
	PixelFormat: RGB666,
	MADCTL:      0x08,
}

// Dev is a handle to the panel controller.
type Dev struct {
	t     Transport
	rst   gpio.PinOut
	cmds  []Command
	sleep Sleeper
	ready bool
}

// New returns a handle to the controller. It does not touch the hardware;
// call Init.
func New(t Transport, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("st7701: a transport is required")
	}
	if rst == nil || rst == gpio.INVALID {
		return nil, errors.New("st7701: a reset line is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		t:     t,
		rst:   rst,
		cmds:  opts.Commands,
		sleep: opts.Sleeper,
	}
	if d.cmds == nil {
		d.cmds = InitSequence(opts.PixelFormat, opts.MADCTL)
	}
	if d.sleep == nil {
		d.sleep = DefaultSleeper
	}
	return d, nil
}

// Reset pulses the reset line high, low and high again, holding each level
// for 100ms.
func (d *Dev) Reset() error {
	d.ready = false
	eh := errorHandler{}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		eh.out(d.rst, l)
		if eh.err != nil {
			return eh.err
		}
		d.sleep.Sleep(resetDwell)
	}
	return nil
}

// Init resets the controller and sends the register table in order.
//
// The first write that fails aborts the sequence and its error is returned
// as is; the panel is then in an unknown state and only a new Init can
// recover it. Nothing is retried.
func (d *Dev) Init() error {
	if err := d.Reset(); err != nil {
		return err
	}
	for _, c := range d.cmds {
		if err := d.send(c); err != nil {
			return err
		}
	}
	d.ready = true
	return nil
}

// Ready reports whether the last Init completed.
func (d *Dev) Ready() bool {
	return d.ready
}

// Halt turns the display off and puts the controller to sleep.
func (d *Dev) Halt() error {
	d.ready = false
	if err := d.send(Command{Op: displayOff}); err != nil {
		return err
	}
	return d.send(Command{Op: sleepIn})
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7701.Dev{%v, %s}", d.t, d.rst)
}

func (d *Dev) send(c Command) error {
	if err := d.t.WriteCommand(c.Op); err != nil {
		return err
	}
	if len(c.Params) != 0 {
		if err := d.t.WriteData(c.Params); err != nil {
			return err
		}
	}
	delay := c.Delay
	if floor, ok := settleAfter[c.Op]; ok && delay < floor {
		delay = floor
	}
	d.sleep.Sleep(delay)
	return nil
}

var _ conn.Resource = &Dev{}
