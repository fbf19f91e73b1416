// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgbpanel is a container for the packages that bring up an
// ST7701-driven RGB panel and keep it fed with pixels.
//
// Package st7701 configures the controller over its 3-wire serial port,
// package dmaring holds the descriptor ring the DMA engine drains and package
// stream ties both together in a streaming session. Package dpi carries the
// panel timing and package image565 its pixel format; screen1d previews the
// stream in a terminal.
package rgbpanel
