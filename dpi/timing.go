// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dpi

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Timing is the frame timing of a DPI panel.
//
// Horizontal values are in pixel clocks, vertical values in lines. Totals
// include the active area, the porches and the sync pulse.
type Timing struct {
	PixelClock physic.Frequency

	HActive     int
	HTotal      int
	HFrontPorch int
	HSyncWidth  int

	VActive     int
	VTotal      int
	VFrontPorch int
	VSyncWidth  int

	// Idle levels of the control lines between active periods.
	HSyncIdle gpio.Level
	VSyncIdle gpio.Level
	DEIdle    gpio.Level
	// PCLKIdle is the pixel clock idle level. Data is shifted out on the
	// opposite edge.
	PCLKIdle gpio.Level

	// BytesPerPixel is the width of one pixel in the DMA stream; 2 for a
	// 16 bit bus in RGB565.
	BytesPerPixel int
}

// Panel480x480 is the timing of the 2.1" 480x480 round ST7701 panels on a 16
// bit bus.
var Panel480x480 = Timing{
	PixelClock:    12 * physic.MegaHertz,
	HActive:       480,
	HTotal:        500,
	HFrontPorch:   10,
	HSyncWidth:    10,
	VActive:       480,
	VTotal:        493,
	VFrontPorch:   2,
	VSyncWidth:    10,
	HSyncIdle:     gpio.High,
	VSyncIdle:     gpio.High,
	DEIdle:        gpio.Low,
	PCLKIdle:      gpio.Low,
	BytesPerPixel: 2,
}

// Validate returns an error if the timing cannot be generated.
func (t *Timing) Validate() error {
	if t.PixelClock <= 0 {
		return errors.New("dpi: pixel clock must be positive")
	}
	if t.HActive <= 0 || t.VActive <= 0 {
		return fmt.Errorf("dpi: invalid active area %dx%d", t.HActive, t.VActive)
	}
	if t.HFrontPorch < 0 || t.HSyncWidth < 0 || t.VFrontPorch < 0 || t.VSyncWidth < 0 {
		return errors.New("dpi: porches and sync widths cannot be negative")
	}
	if h := t.HActive + t.HFrontPorch + t.HSyncWidth; t.HTotal < h {
		return fmt.Errorf("dpi: horizontal total %d is less than %d", t.HTotal, h)
	}
	if v := t.VActive + t.VFrontPorch + t.VSyncWidth; t.VTotal < v {
		return fmt.Errorf("dpi: vertical total %d is less than %d", t.VTotal, v)
	}
	if t.BytesPerPixel < 1 || t.BytesPerPixel > 3 {
		return fmt.Errorf("dpi: %d bytes per pixel is not supported", t.BytesPerPixel)
	}
	return nil
}

// LineBytes is the number of bytes the interface consumes per active line.
func (t *Timing) LineBytes() int {
	return t.HActive * t.BytesPerPixel
}

// FrameBytes is the number of bytes the interface consumes per frame.
func (t *Timing) FrameBytes() int {
	return t.LineBytes() * t.VActive
}

// FrameRate is the refresh rate. FrameRate, LinePeriod and ByteRate return 0
// for a timing Validate rejects.
func (t *Timing) FrameRate() physic.Frequency {
	if t.Validate() != nil {
		return 0
	}
	return t.PixelClock / physic.Frequency(t.HTotal*t.VTotal)
}

// LinePeriod is the duration of one line, blanking included.
func (t *Timing) LinePeriod() time.Duration {
	if t.Validate() != nil {
		return 0
	}
	return time.Duration(int64(t.HTotal) * int64(time.Second) * int64(physic.Hertz) / int64(t.PixelClock))
}

// ByteRate is the average number of bytes per second the interface drains
// from memory. Blanking periods consume nothing, so it is below
// PixelClock*BytesPerPixel.
func (t *Timing) ByteRate() int64 {
	if t.Validate() != nil {
		return 0
	}
	hz := int64(t.PixelClock / physic.Hertz)
	return hz * int64(t.FrameBytes()) / int64(t.HTotal*t.VTotal)
}

func (t *Timing) String() string {
	return fmt.Sprintf("%dx%d@%s (%dx%d, %s)", t.HActive, t.VActive, t.FrameRate(), t.HTotal, t.VTotal, t.PixelClock)
}
