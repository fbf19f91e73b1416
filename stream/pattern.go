// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package stream

import (
	"errors"
	"fmt"
)

// Pattern is fixed content streamed in a loop. It remembers how far the
// last push got so the stream stays aligned when the ring buffer clips.
type Pattern struct {
	data []byte
	off  int
}

// NewPattern returns a Pattern repeating data. data is not copied.
func NewPattern(data []byte) (*Pattern, error) {
	if len(data) == 0 {
		return nil, errors.New("stream: empty pattern")
	}
	return &Pattern{data: data}, nil
}

// Chunk returns the bytes left until the end of the current repetition.
func (p *Pattern) Chunk() []byte {
	return p.data[p.off:]
}

// Advance marks n bytes of Chunk as sent.
func (p *Pattern) Advance(n int) {
	p.off = (p.off + n) % len(p.data)
}

// Len returns the length of one repetition.
func (p *Pattern) Len() int {
	return len(p.data)
}

func (p *Pattern) String() string {
	return fmt.Sprintf("stream.Pattern{%d/%d}", p.off, len(p.data))
}
