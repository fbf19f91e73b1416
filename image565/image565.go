// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image565

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Color is a RGB565 pixel.
type Color uint16

// Primary colors.
const (
	Black Color = 0x0000
	Red   Color = 0xF800
	Green Color = 0x07E0
	Blue  Color = 0x001F
	White Color = 0xFFFF
)

// RGB packs 8 bit channels, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) * 0xFFFF / 0x1F
	g = uint32(c>>5&0x3F) * 0xFFFF / 0x3F
	b = uint32(c&0x1F) * 0xFFFF / 0x1F
	return r, g, b, 0xFFFF
}

// Bytes returns the two bytes of c in stream order.
func (c Color) Bytes() [2]byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(c))
	return b
}

func (c Color) String() string {
	return fmt.Sprintf("RGB565(0x%04X)", uint16(c))
}

func convert(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Color(uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11))
}

// Model converts any color to Color.
var Model = color.ModelFunc(convert)

// Image is an in-memory RGB565 image.
type Image struct {
	// Pix holds the pixels in stream order, two bytes per pixel.
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewImage returns an Image with the given bounds, all black.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	return &Image{Pix: make([]byte, 2*w*h), Stride: 2 * w, Rect: r}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At returns the pixel at (x, y), black outside the bounds.
func (i *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return Black
	}
	o := i.PixOffset(x, y)
	return Color(binary.LittleEndian.Uint16(i.Pix[o:]))
}

// RGBA64At implements image.RGBA64Image.
func (i *Image) RGBA64At(x, y int) color.RGBA64 {
	r, g, b, a := i.RGB565At(x, y).RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}

// Opaque implements the optional interface image/draw uses to skip alpha
// blending.
func (i *Image) Opaque() bool {
	return true
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, convert(c).(Color))
}

// SetRGB565 sets the pixel at (x, y). Points outside the bounds are ignored.
func (i *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	binary.LittleEndian.PutUint16(i.Pix[o:], uint16(c))
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

// Fill sets every pixel to c.
func (i *Image) Fill(c Color) {
	b := c.Bytes()
	for o := 0; o+1 < len(i.Pix); o += 2 {
		i.Pix[o] = b[0]
		i.Pix[o+1] = b[1]
	}
}

var _ draw.Image = &Image{}
var _ image.RGBA64Image = &Image{}
