// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dpi

import (
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"
)

func TestPanel480x480(t *testing.T) {
	p := Panel480x480
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := p.LineBytes(); got != 960 {
		t.Errorf("LineBytes() = %d, want 960", got)
	}
	if got := p.FrameBytes(); got != 460800 {
		t.Errorf("FrameBytes() = %d, want 460800", got)
	}
	// 12MHz / (500*493) = 48.68Hz.
	if f := p.FrameRate(); f < 48*physic.Hertz || f > 49*physic.Hertz {
		t.Errorf("FrameRate() = %s", f)
	}
	// 12e6 * 460800 / 246500.
	if got := p.ByteRate(); got != 22432454 {
		t.Errorf("ByteRate() = %d", got)
	}
	if got := p.LinePeriod(); got != 41666*time.Nanosecond {
		t.Errorf("LinePeriod() = %s", got)
	}
	if s := p.String(); !strings.HasPrefix(s, "480x480@") {
		t.Errorf("String() = %q", s)
	}
}

func TestByteRateBelowBus(t *testing.T) {
	p := Panel480x480
	bus := int64(p.PixelClock/physic.Hertz) * int64(p.BytesPerPixel)
	if r := p.ByteRate(); r <= 0 || r >= bus {
		t.Errorf("ByteRate() = %d, bus peak is %d", r, bus)
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		edit func(t *Timing)
	}{
		{"no clock", func(t *Timing) { t.PixelClock = 0 }},
		{"no width", func(t *Timing) { t.HActive = 0 }},
		{"no height", func(t *Timing) { t.VActive = -1 }},
		{"negative porch", func(t *Timing) { t.HFrontPorch = -1 }},
		{"short line", func(t *Timing) { t.HTotal = 499 }},
		{"short frame", func(t *Timing) { t.VTotal = 491 }},
		{"no pixel", func(t *Timing) { t.BytesPerPixel = 0 }},
		{"wide pixel", func(t *Timing) { t.BytesPerPixel = 4 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Panel480x480
			tc.edit(&p)
			if err := p.Validate(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestInvalidTimingRates(t *testing.T) {
	var z Timing
	if z.FrameRate() != 0 || z.LinePeriod() != 0 || z.ByteRate() != 0 {
		t.Errorf("zero Timing: FrameRate() = %s, LinePeriod() = %s, ByteRate() = %d", z.FrameRate(), z.LinePeriod(), z.ByteRate())
	}
	if s := z.String(); !strings.HasPrefix(s, "0x0@") {
		t.Errorf("String() = %q", s)
	}
}
