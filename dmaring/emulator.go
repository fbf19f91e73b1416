// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dmaring

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
)

// EmulatorOpts configures an Emulator.
type EmulatorOpts struct {
	// ByteRate is how many bytes per second the display interface consumes.
	// See dpi.Timing.ByteRate.
	ByteRate int64
	// Sink receives the drained bytes in order. May be nil.
	Sink io.Writer
	// Clock paces the engine. Defaults to the wall clock.
	Clock clock.Clock
}

// Emulator is an Engine for hosts without a DMA-capable display interface.
// It drains one descriptor at a time at the configured byte rate.
//
// A descriptor found short when its turn comes is an underrun: on hardware
// the panel would show stale or shifted pixels.
type Emulator struct {
	rate int64
	sink io.Writer
	clk  clock.Clock

	t      *Transfer
	buf    []byte
	period time.Duration

	steps     atomic.Uint64
	drained   atomic.Uint64
	underruns atomic.Uint64
	sinkErr   atomic.Error

	stop chan struct{}
	done chan struct{}
}

// NewEmulator returns an Emulator ready to be given to Start.
func NewEmulator(opts *EmulatorOpts) (*Emulator, error) {
	if opts == nil || opts.ByteRate <= 0 {
		return nil, errors.New("dmaring: emulator needs a positive byte rate")
	}
	e := &Emulator{
		rate: opts.ByteRate,
		sink: opts.Sink,
		clk:  opts.Clock,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	if e.clk == nil {
		e.clk = clock.New()
	}
	return e, nil
}

// Begin implements Engine.
func (e *Emulator) Begin(t *Transfer) error {
	if e.t != nil {
		return errors.New("dmaring: emulator already running")
	}
	size := t.r.descs[0].Size
	e.period = time.Duration(int64(size) * int64(time.Second) / e.rate)
	if e.period <= 0 {
		return fmt.Errorf("dmaring: %d bytes/s is too fast to emulate", e.rate)
	}
	e.t = t
	e.buf = make([]byte, size)
	tk := e.clk.Ticker(e.period)
	go e.run(tk, e.clk.Now())
	return nil
}

// step drains one descriptor like the hardware does once per descriptor
// period. It returns the number of bytes drained. Only run calls it.
func (e *Emulator) step() int {
	n := e.t.Drain(e.buf)
	e.steps.Inc()
	e.drained.Add(uint64(n))
	if n < len(e.buf) {
		e.underruns.Inc()
	}
	if e.sink != nil && n > 0 {
		if _, err := e.sink.Write(e.buf[:n]); err != nil {
			e.sinkErr.Store(err)
		}
	}
	return n
}

// Drained returns the number of bytes consumed so far.
func (e *Emulator) Drained() uint64 {
	return e.drained.Load()
}

// Underruns returns the number of descriptors found short.
func (e *Emulator) Underruns() uint64 {
	return e.underruns.Load()
}

// Halt stops the engine and returns the last error of the sink, if any.
func (e *Emulator) Halt() error {
	if e.t == nil {
		return nil
	}
	select {
	case <-e.stop:
	default:
		close(e.stop)
	}
	<-e.done
	return e.sinkErr.Load()
}

func (e *Emulator) String() string {
	return fmt.Sprintf("dmaring.Emulator{%d B/s}", e.rate)
}

// run catches up on the descriptors due since start on every tick. Host
// tickers are late under load; draining by elapsed time keeps the average
// rate right. A tick never drains more than one lap of the ring.
func (e *Emulator) run(tk *clock.Ticker, start time.Time) {
	defer close(e.done)
	defer tk.Stop()
	laps := uint64(len(e.t.r.descs))
	for {
		select {
		case <-e.stop:
			return
		case <-tk.C:
			due := uint64(e.clk.Since(start) / e.period)
			if due > e.steps.Load()+laps {
				e.steps.Store(due - laps)
			}
			for e.steps.Load() < due {
				e.step()
			}
		}
	}
}

var _ Engine = &Emulator{}
