// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen1d implements a one line preview of a RGB565 pixel stream
// that outputs to terminal (stdout) using ANSI color codes.
//
// Useful while the panel is still on its way: plug it as the sink of a
// dmaring.Emulator and watch the scanlines go by.
package screen1d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/rgbpanel/image565"
)

// Opts represents the options available for this display.
type Opts struct {
	// X is the number of terminal columns.
	X int
	// Line is the number of pixels per scanline in the stream. Defaults to
	// X.
	Line int
	// Every shows one scanline out of Every. Defaults to 1.
	Every int
	// Interp scales scanlines to X columns. Defaults to
	// draw.NearestNeighbor.
	Interp  draw.Interpolator
	Palette *ansi256.Palette
	// W defaults to stdout.
	W io.Writer

	_ struct{}
}

// Dev is a terminal scanline preview.
type Dev struct {
	w       io.Writer
	l       int
	every   uint64
	interp  draw.Interpolator
	palette ansi256.Palette

	line  *image565.Image
	fill  int
	lines uint64

	pixels *image.NRGBA
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.X <= 0 {
		return nil, errors.New("screen1d: X must be positive")
	}
	l := opts.Line
	if l == 0 {
		l = opts.X
	}
	if l < 0 || opts.Every < 0 {
		return nil, errors.New("screen1d: invalid line options")
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		l:       opts.X,
		every:   uint64(opts.Every),
		interp:  opts.Interp,
		palette: *p,
		line:    image565.NewImage(image.Rect(0, 0, l, 1)),
		pixels:  image.NewNRGBA(image.Rect(0, 0, opts.X, 1)),
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.every == 0 {
		d.every = 1
	}
	if d.interp == nil {
		d.interp = draw.NearestNeighbor
	}
	return d, nil
}

func (d *Dev) String() string {
	return "Screen1D"
}

// Halt implements conn.Resource.
//
// It clears the display so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Lines returns the number of complete scanlines received.
func (d *Dev) Lines() uint64 {
	return d.lines
}

// Write accepts a stream of RGB565 pixels, in any chunk size, and shows the
// selected scanlines.
func (d *Dev) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		n := copy(d.line.Pix[d.fill:], p)
		d.fill += n
		p = p[n:]
		if d.fill < len(d.line.Pix) {
			break
		}
		d.fill = 0
		d.lines++
		if (d.lines-1)%d.every != 0 {
			continue
		}
		d.interp.Scale(d.pixels, d.pixels.Rect, d.line, d.line.Rect, draw.Src, nil)
		if err := d.refresh(); err != nil {
			return total - len(p), err
		}
	}
	return total, nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: d.l, Y: 1}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	draw.Copy(d.pixels, r.Min, src, image.Rectangle{Min: sp, Max: sp.Add(r.Size())}, draw.Src, nil)
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.l; i++ {
		_, _ = io.WriteString(&d.buf, d.palette.Block(d.pixels.NRGBAAt(i, 0)))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
