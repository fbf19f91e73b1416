// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dmaring

import (
	"errors"
	"fmt"
)

// ErrMoved is returned by Start when the buffer already belongs to a
// Transfer.
var ErrMoved = errors.New("dmaring: buffer already handed to a transfer")

// Engine drains a Transfer into the display interface.
//
// Begin must start draining and return without waiting for it. The engine
// calls Transfer.Drain from then on.
type Engine interface {
	Begin(t *Transfer) error
}

// Transfer is a running stream over a RingBuffer shared with an Engine.
type Transfer struct {
	r *ring
}

// Start moves b into a Transfer and hands it to e. b is empty afterward and
// cannot be started again.
//
// Nothing else happens between the hand-over and the return, the caller is
// expected to go on refilling right away.
func Start(b *RingBuffer, e Engine) (*Transfer, error) {
	if b.r == nil {
		return nil, ErrMoved
	}
	t := &Transfer{r: b.r}
	b.r = nil
	if err := e.Begin(t); err != nil {
		// The engine never saw the memory, give it back.
		b.r = t.r
		return nil, fmt.Errorf("dmaring: starting engine: %w", err)
	}
	return t, nil
}

// Push has the same semantics as RingBuffer.Push on the shared memory: it
// only writes into descriptors the engine already consumed.
func (t *Transfer) Push(p []byte) int {
	return t.r.push(p)
}

// Drain copies up to len(dst) pushed bytes into dst and releases their
// space. It is the engine side of the transfer and must not be called by
// the producer.
func (t *Transfer) Drain(dst []byte) int {
	return t.r.drain(dst)
}

// Cap returns the capacity in bytes.
func (t *Transfer) Cap() int {
	return t.r.capacity()
}

// Len returns the number of bytes pushed and not drained.
func (t *Transfer) Len() int {
	return t.r.filled()
}

// Available returns the number of bytes Push would accept.
func (t *Transfer) Available() int {
	return t.Cap() - t.Len()
}

// WriteOffset returns the position in the arena of the next pushed byte.
// It is always in [0, Cap()).
func (t *Transfer) WriteOffset() int {
	return int(t.r.written.Load() % uint64(t.r.capacity()))
}

// ReadOffset returns the position in the arena of the next drained byte.
func (t *Transfer) ReadOffset() int {
	return int(t.r.read.Load() % uint64(t.r.capacity()))
}

// Descriptors returns a copy of the descriptor chain.
func (t *Transfer) Descriptors() []Descriptor {
	return append([]Descriptor(nil), t.r.descs...)
}

func (t *Transfer) String() string {
	return fmt.Sprintf("dmaring.Transfer{%d/%d bytes}", t.Len(), t.Cap())
}
