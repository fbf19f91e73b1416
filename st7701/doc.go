// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7701 controls the Sitronix ST7701 (and ST7701S) TFT driver found
// on 480x480 round and square RGB panels.
//
// The controller is configured through a 3-wire serial interface where every
// word is 9 bits long: a D/C bit followed by the payload byte, MSB first.
// Pixels are not sent over this interface; once Init returns the panel expects
// them on its parallel RGB (DPI) bus. See packages dmaring and stream.
//
// Two transports are provided: SPI uses a spi.Port able to do 9 bits per word,
// BitBang toggles three GPIO lines directly.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/ST7701S.pdf
package st7701
