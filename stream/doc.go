// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package stream runs the bring-up and pixel streaming of a DPI panel.
//
// A Session walks RESET, CONFIGURING, READY and STREAMING in that order.
// STREAMING is terminal: once the ring buffer is handed to the engine,
// Run refills it forever and there is no way back.
//
// Known hazard: on the target silicon, any extra delay between handing the
// buffer to the DMA engine and the first refill was observed to hang the
// engine. The cause is not understood. Session does no work between Start
// and the first Step; validate the buffer size and refill latency on the
// real hardware before relying on a different cadence.
package stream
