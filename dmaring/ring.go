// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dmaring

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"
)

// MaxDescriptorSize is the largest buffer a single descriptor can point to;
// the length fields are 12 bits wide.
const MaxDescriptorSize = 4095

// ErrGeometry is returned when the arena cannot be split into descriptors.
var ErrGeometry = errors.New("dmaring: invalid descriptor geometry")

// Descriptor is one segment of the chain.
type Descriptor struct {
	// Offset of the segment in the arena.
	Offset int
	// Size of the segment in bytes.
	Size int
	// Next is the index of the following descriptor; the last one points
	// back to the first.
	Next int
}

// ring is the storage and cursors shared by RingBuffer and Transfer.
//
// written and read count bytes since creation and never wrap; positions in
// the arena are the counters modulo the capacity.
type ring struct {
	arena   []byte
	descs   []Descriptor
	written atomic.Uint64
	read    atomic.Uint64
}

func newRing(arena []byte, count int) (*ring, error) {
	if count <= 0 || len(arena) == 0 || len(arena)%count != 0 {
		return nil, fmt.Errorf("%w: %d bytes in %d descriptors", ErrGeometry, len(arena), count)
	}
	size := len(arena) / count
	if size > MaxDescriptorSize {
		return nil, fmt.Errorf("%w: %d bytes per descriptor, max %d", ErrGeometry, size, MaxDescriptorSize)
	}
	r := &ring{arena: arena, descs: make([]Descriptor, count)}
	for i := range r.descs {
		r.descs[i] = Descriptor{Offset: i * size, Size: size, Next: (i + 1) % count}
	}
	return r, nil
}

func (r *ring) capacity() int {
	return len(r.arena)
}

// filled is the number of bytes pushed and not yet drained.
func (r *ring) filled() int {
	return int(r.written.Load() - r.read.Load())
}

// push is only called by the producer.
func (r *ring) push(p []byte) int {
	w := r.written.Load()
	free := r.capacity() - int(w-r.read.Load())
	n := len(p)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}
	off := int(w % uint64(r.capacity()))
	k := copy(r.arena[off:], p[:n])
	copy(r.arena, p[k:n])
	// Publish only once the bytes are in place.
	r.written.Store(w + uint64(n))
	return n
}

// drain is only called by the consumer.
func (r *ring) drain(dst []byte) int {
	rd := r.read.Load()
	n := int(r.written.Load() - rd)
	if n > len(dst) {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	off := int(rd % uint64(r.capacity()))
	k := copy(dst[:n], r.arena[off:])
	copy(dst[k:n], r.arena)
	r.read.Store(rd + uint64(n))
	return n
}

// RingBuffer is a descriptor ring owned by software. It is consumed by Start.
type RingBuffer struct {
	r *ring
}

// New allocates an arena of count descriptors of size bytes each.
func New(count, size int) (*RingBuffer, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d descriptors", ErrGeometry, count)
	}
	if size <= 0 || size > MaxDescriptorSize {
		return nil, fmt.Errorf("%w: descriptor size %d, max %d", ErrGeometry, size, MaxDescriptorSize)
	}
	return NewFromArena(make([]byte, count*size), count)
}

// NewFromArena splits arena into count descriptors. The arena is used as is
// and must not be touched by the caller afterward.
func NewFromArena(arena []byte, count int) (*RingBuffer, error) {
	r, err := newRing(arena, count)
	if err != nil {
		return nil, err
	}
	return &RingBuffer{r: r}, nil
}

// Push copies as many leading bytes of p as there is free space and returns
// how many were taken. It never blocks. A short count means the buffer is
// full; the caller should offer the rest again later.
//
// After Start, Push takes nothing: use Transfer.Push.
func (b *RingBuffer) Push(p []byte) int {
	if b.r == nil {
		return 0
	}
	return b.r.push(p)
}

// Cap returns the capacity in bytes, the descriptor count times their size.
func (b *RingBuffer) Cap() int {
	if b.r == nil {
		return 0
	}
	return b.r.capacity()
}

// Len returns the number of bytes pushed and not consumed.
func (b *RingBuffer) Len() int {
	if b.r == nil {
		return 0
	}
	return b.r.filled()
}

// Available returns the number of bytes Push would accept.
func (b *RingBuffer) Available() int {
	return b.Cap() - b.Len()
}

// Descriptors returns a copy of the descriptor chain.
func (b *RingBuffer) Descriptors() []Descriptor {
	if b.r == nil {
		return nil
	}
	return append([]Descriptor(nil), b.r.descs...)
}

// Moved reports whether the buffer was handed to a Transfer.
func (b *RingBuffer) Moved() bool {
	return b.r == nil
}

func (b *RingBuffer) String() string {
	if b.r == nil {
		return "dmaring.RingBuffer{moved}"
	}
	return fmt.Sprintf("dmaring.RingBuffer{%d x %d bytes, %d filled}", len(b.r.descs), b.r.descs[0].Size, b.Len())
}
