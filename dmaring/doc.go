// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dmaring implements the circular descriptor buffer a DMA engine
// drains into a parallel display interface.
//
// A RingBuffer is one arena split into equally sized descriptors chained in a
// circle. Software fills it with Push, which never blocks and accepts only
// what fits. Once the buffer is primed, Start hands it to an Engine and
// returns a Transfer: from then on the memory is shared with the engine and
// all writes go through Transfer.Push.
//
// Software and engine only communicate through the write and read cursors.
// There is no lock; Push never lets the write cursor get more than the
// capacity ahead of the read cursor, which is what keeps unread data from
// being overwritten.
package dmaring
