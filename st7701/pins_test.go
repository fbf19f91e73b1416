// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"time"

	"github.com/benbjohnson/clock"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// event is one line change seen by a recorder.
type event struct {
	pin   string
	level gpio.Level
	at    time.Duration
}

// recorder logs the changes of all its pins in order. When clk is set, each
// change is stamped with the time elapsed on the mock clock.
type recorder struct {
	clk    *clock.Mock
	start  time.Time
	events []event
}

func newRecorder(clk *clock.Mock) *recorder {
	r := &recorder{clk: clk}
	if clk != nil {
		r.start = clk.Now()
	}
	return r
}

func (r *recorder) pin(name string) *recPin {
	return &recPin{Pin: &gpiotest.Pin{N: name}, r: r}
}

func (r *recorder) elapsed() time.Duration {
	if r.clk == nil {
		return 0
	}
	return r.clk.Now().Sub(r.start)
}

// only returns the events of one pin.
func (r *recorder) only(name string) []event {
	var out []event
	for _, e := range r.events {
		if e.pin == name {
			out = append(out, e)
		}
	}
	return out
}

// recPin is a gpiotest.Pin logging every Out call. Out fails with fail once
// it is set.
type recPin struct {
	*gpiotest.Pin
	r    *recorder
	fail error
}

func (p *recPin) Out(l gpio.Level) error {
	if p.fail != nil {
		return p.fail
	}
	p.r.events = append(p.r.events, event{pin: p.Pin.N, level: l, at: p.r.elapsed()})
	return p.Pin.Out(l)
}

// mockSleeper advances a mock clock instead of blocking.
type mockSleeper struct {
	c *clock.Mock
}

func (m mockSleeper) Sleep(d time.Duration) {
	if d > 0 {
		m.c.Add(d)
	}
}

// sleepLog records the requested delays.
type sleepLog []time.Duration

func (s *sleepLog) Sleep(d time.Duration) {
	*s = append(*s, d)
}
