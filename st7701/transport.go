// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

// Frame is one 9-bit word of the serial interface.
type Frame struct {
	// Data is the D/C bit: false for a command opcode, true for a parameter.
	Data  bool
	Value byte
}

// CommandFrame returns the frame carrying opcode op.
func CommandFrame(op byte) Frame {
	return Frame{Value: op}
}

// DataFrame returns the frame carrying parameter b.
func DataFrame(b byte) Frame {
	return Frame{Data: true, Value: b}
}

// Word returns the frame as a right aligned 9-bit word. The D/C bit is bit 8,
// the most significant one, and goes out first on the wire.
func (f Frame) Word() uint16 {
	w := uint16(f.Value)
	if f.Data {
		w |= 1 << 8
	}
	return w
}

func (f Frame) String() string {
	if f.Data {
		return fmt.Sprintf("data 0x%02X", f.Value)
	}
	return fmt.Sprintf("cmd 0x%02X", f.Value)
}

// Transport sends opcodes and parameters to the controller registers.
//
// WriteCommand and WriteData each run inside their own chip-select session
// unless they are called from within WhileAsserted, in which case they join
// the enclosing one.
type Transport interface {
	WriteCommand(op byte) error
	WriteData(data []byte) error
	// WhileAsserted runs f with chip-select asserted. Chip-select is released
	// when f returns, whatever the outcome.
	WhileAsserted(f func() error) error
}

// PerTransaction implements Transport.WhileAsserted for buses that assert
// chip-select on each transaction by themselves. It only runs f.
type PerTransaction struct{}

// WhileAsserted implements Transport.
func (PerTransaction) WhileAsserted(f func() error) error {
	return f()
}

// TransportError is a fault reported by the bus while sending a frame. The
// frame and everything after it were not sent.
type TransportError struct {
	Frame Frame
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("st7701: sending %s: %v", e.Frame, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Sleeper blocks the caller for at least d.
//
// clock.Clock from github.com/benbjohnson/clock implements it.
type Sleeper interface {
	Sleep(d time.Duration)
}

// DefaultSleeper is used when no Sleeper is given in the options.
var DefaultSleeper Sleeper = hostDelay{c: clock.New()}

// spinBelow is the shortest wait handed to the scheduler. Shorter waits are
// busy loops, the kernel timer slack would stretch them by orders of
// magnitude.
const spinBelow = 500 * time.Microsecond

type hostDelay struct {
	c clock.Clock
}

func (h hostDelay) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if d >= spinBelow {
		h.c.Sleep(d)
		return
	}
	for start := h.c.Now(); h.c.Since(start) < d; {
	}
}
