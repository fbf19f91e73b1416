// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image565 implements the 16 bit RGB565 pixel format of parallel RGB
// panels on a 16 bit bus.
//
// Each pixel is one little endian 16 bit word: red in bits 15-11, green in
// bits 10-5 and blue in bits 4-0. Image.Pix is laid out exactly as the
// display interface reads it, so a row of pixels can be pushed as is.
package image565
