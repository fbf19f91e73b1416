// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package stream

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/GermanBionicSystems/rgbpanel/dmaring"
	"github.com/GermanBionicSystems/rgbpanel/dpi"
)

// State is the state of a Session.
type State int

// Session states.
const (
	Reset State = iota
	Configuring
	Ready
	Streaming
)

func (s State) String() string {
	switch s {
	case Reset:
		return "RESET"
	case Configuring:
		return "CONFIGURING"
	case Ready:
		return "READY"
	case Streaming:
		return "STREAMING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrState is returned when an operation is called in the wrong state.
var ErrState = errors.New("stream: invalid state")

// Panel is the controller brought up by Configure. *st7701.Dev implements
// it.
type Panel interface {
	Init() error
}

// Opts is optional configuration for a Session.
type Opts struct {
	// Logger defaults to a no-op logger.
	Logger *zap.SugaredLogger
	// Timing, when set, is used to report how much time the primed buffer
	// covers.
	Timing *dpi.Timing
}

// Session owns the panel and the ring buffer from reset to streaming.
type Session struct {
	panel  Panel
	buf    *dmaring.RingBuffer
	log    *zap.SugaredLogger
	timing *dpi.Timing

	state   State
	pattern *Pattern
	t       *dmaring.Transfer
}

// New returns a Session in the Reset state. buf must not be used by the
// caller afterward.
func New(p Panel, buf *dmaring.RingBuffer, opts *Opts) (*Session, error) {
	if p == nil {
		return nil, errors.New("stream: panel is required")
	}
	if buf == nil || buf.Moved() {
		return nil, errors.New("stream: a fresh ring buffer is required")
	}
	s := &Session{panel: p, buf: buf, state: Reset}
	if opts != nil {
		s.log = opts.Logger
		s.timing = opts.Timing
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	return s, nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Configure resets and programs the panel.
//
// On failure the session falls back to Reset and the panel error is returned
// unchanged; the only recovery is to call Configure again.
func (s *Session) Configure() error {
	if s.state != Reset && s.state != Ready {
		return s.wrongState("Configure")
	}
	s.state = Configuring
	s.log.Info("initializing panel")
	if err := s.panel.Init(); err != nil {
		s.state = Reset
		s.log.Errorw("panel initialization failed", "error", err)
		return err
	}
	s.state = Ready
	s.log.Info("panel initialized")
	return nil
}

// Prefill pushes p into the ring buffer until it clips and returns the
// number of bytes pushed. p becomes the content Step streams.
func (s *Session) Prefill(p *Pattern) (int, error) {
	if s.state != Ready {
		return 0, s.wrongState("Prefill")
	}
	if p == nil {
		return 0, errors.New("stream: pattern is required")
	}
	s.pattern = p
	total := 0
	for {
		c := p.Chunk()
		n := s.buf.Push(c)
		p.Advance(n)
		total += n
		if n < len(c) {
			break
		}
	}
	s.log.Debugw("buffer primed", "bytes", total, "capacity", s.buf.Cap())
	if s.timing != nil {
		if r := s.timing.ByteRate(); r > 0 {
			s.log.Infow("buffer headroom", "covers", time.Duration(int64(s.buf.Cap())*int64(time.Second)/r), "byte_rate", r)
		}
	}
	return total, nil
}

// Start hands the ring buffer to e and enters Streaming. Prefill must have
// been called.
//
// The caller must call Run (or Step) right after.
func (s *Session) Start(e dmaring.Engine) error {
	if s.state != Ready || s.pattern == nil {
		return s.wrongState("Start")
	}
	s.log.Info("streaming")
	t, err := dmaring.Start(s.buf, e)
	if err != nil {
		return err
	}
	s.t = t
	s.buf = nil
	s.state = Streaming
	return nil
}

// Step pushes the next chunk of the pattern once and returns how many bytes
// the ring buffer took.
func (s *Session) Step() int {
	if s.state != Streaming {
		return 0
	}
	n := s.t.Push(s.pattern.Chunk())
	s.pattern.Advance(n)
	return n
}

// Run refills the ring buffer forever. It only returns, with ErrState, when
// the session is not streaming.
func (s *Session) Run() error {
	if s.state != Streaming {
		return s.wrongState("Run")
	}
	for {
		if s.Step() == 0 {
			// The ring is full.
			runtime.Gosched()
		}
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("stream.Session{%s}", s.state)
}

func (s *Session) wrongState(op string) error {
	return fmt.Errorf("%w: %s in %s", ErrState, op, s.state)
}
