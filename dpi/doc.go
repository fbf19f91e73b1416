// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dpi describes the frame timing of a parallel RGB (DPI) display
// interface.
//
// The interface peripheral itself is configured by the platform; this
// package only carries the numbers and derives the rates a pixel producer
// has to keep up with.
package dpi
