// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// BitBangOpts configures the software transport.
type BitBangOpts struct {
	// BitDelay separates clock edges. The ST7701 needs 33ns of SDA setup and
	// hold around the SCL rising edge.
	BitDelay time.Duration
	// Settle is waited after chip-select goes low and again before it goes
	// back high.
	Settle time.Duration
	// Sleeper implements the delays. Defaults to DefaultSleeper.
	Sleeper Sleeper
}

// DefaultBitBangOpts is what NewBitBang uses when opts is nil.
var DefaultBitBangOpts = BitBangOpts{
	BitDelay: 100 * time.Nanosecond,
	Settle:   time.Millisecond,
}

// BitBang is a Transport toggling the CS, SCL and SDA lines directly.
//
// Every WriteCommand and WriteData call is its own chip-select session. Wrap
// several calls in WhileAsserted to send them under a single one.
//
// BitBang never returns a TransportError. Errors returned are the ones
// reported by the gpio driver.
type BitBang struct {
	cs  gpio.PinOut
	scl gpio.PinOut
	sda gpio.PinOut

	bitDelay time.Duration
	settle   time.Duration
	sleep    Sleeper

	// depth is the number of nested WhileAsserted calls in progress.
	depth int
}

// NewBitBang returns a transport on the three lines. CS is left deasserted
// (high) and SCL low.
func NewBitBang(cs, scl, sda gpio.PinOut, opts *BitBangOpts) (*BitBang, error) {
	for _, p := range []gpio.PinOut{cs, scl, sda} {
		if p == nil || p == gpio.INVALID {
			return nil, errors.New("st7701: bit-banged transport needs CS, SCL and SDA lines")
		}
	}
	if opts == nil {
		opts = &DefaultBitBangOpts
	}
	b := &BitBang{
		cs:       cs,
		scl:      scl,
		sda:      sda,
		bitDelay: opts.BitDelay,
		settle:   opts.Settle,
		sleep:    opts.Sleeper,
	}
	if b.sleep == nil {
		b.sleep = DefaultSleeper
	}
	eh := errorHandler{}
	eh.out(cs, gpio.High)
	eh.out(scl, gpio.Low)
	eh.out(sda, gpio.Low)
	if eh.err != nil {
		return nil, fmt.Errorf("st7701: %w", eh.err)
	}
	return b, nil
}

// WriteCommand implements Transport.
func (b *BitBang) WriteCommand(op byte) error {
	return b.WhileAsserted(func() error {
		return b.writeFrame(CommandFrame(op))
	})
}

// WriteData implements Transport.
//
// All the bytes are sent under one chip-select assertion.
func (b *BitBang) WriteData(data []byte) error {
	return b.WhileAsserted(func() error {
		for _, v := range data {
			if err := b.writeFrame(DataFrame(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WhileAsserted implements Transport.
//
// CS goes low, Settle is waited, f runs, Settle is waited again and CS goes
// high. Nested calls run f directly inside the outer session.
func (b *BitBang) WhileAsserted(f func() error) (err error) {
	if b.depth > 0 {
		return f()
	}
	if err := b.cs.Out(gpio.Low); err != nil {
		return err
	}
	b.depth++
	defer func() {
		b.depth--
		b.sleep.Sleep(b.settle)
		if errCS := b.cs.Out(gpio.High); err == nil {
			err = errCS
		}
	}()
	b.sleep.Sleep(b.settle)
	return f()
}

func (b *BitBang) String() string {
	return fmt.Sprintf("st7701.BitBang{CS: %s, SCL: %s, SDA: %s}", b.cs, b.scl, b.sda)
}

// writeFrame clocks out the D/C bit then the payload MSB first.
func (b *BitBang) writeFrame(f Frame) error {
	eh := errorHandler{}
	eh.clock(b.scl, b.sda, gpio.Level(f.Data))
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		b.sleep.Sleep(b.bitDelay)
		eh.clock(b.scl, b.sda, gpio.Level(f.Value&mask != 0))
	}
	b.sleep.Sleep(b.bitDelay)
	return eh.err
}

var _ Transport = &BitBang{}
