// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

// port wraps a spitest.Record to check the connection parameters.
type port struct {
	spitest.Record
	freq physic.Frequency
	mode spi.Mode
	bits int
}

func (p *port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.freq, p.mode, p.bits = f, mode, bits
	return p.Record.Connect(f, mode, bits)
}

// failingConn fails every Tx after the first ok ones.
type failingConn struct {
	ok  int
	n   int
	err error
}

func (f *failingConn) String() string { return "failing" }

func (f *failingConn) Duplex() conn.Duplex { return conn.Half }

func (f *failingConn) TxPackets(p []spi.Packet) error { return errors.New("not implemented") }

func (f *failingConn) Tx(w, r []byte) error {
	if f.n >= f.ok {
		return f.err
	}
	f.n++
	return nil
}

func TestNewSPI(t *testing.T) {
	p := &port{}
	s, err := NewSPI(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.bits != 9 || p.freq != DefaultSPIOpts.Freq || p.mode != spi.Mode0 {
		t.Errorf("Connect(%s, %s, %d), want 9 bits per word at %s", p.freq, p.mode, p.bits, DefaultSPIOpts.Freq)
	}
	if s.String() == "" {
		t.Error("String() is empty")
	}

	p = &port{}
	if _, err := NewSPI(p, &SPIOpts{Freq: physic.MegaHertz, Mode: spi.Mode3}); err != nil {
		t.Fatal(err)
	}
	if p.freq != physic.MegaHertz || p.mode != spi.Mode3 {
		t.Errorf("Connect(%s, %s), options ignored", p.freq, p.mode)
	}
}

func TestSPIWordPerByte(t *testing.T) {
	rec := &spitest.Record{}
	c, err := rec.Connect(physic.MegaHertz, spi.Mode0, 9)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSPIConn(c)
	if err := s.WriteCommand(0x11); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteData([]byte{0xAA, 0x01}); err != nil {
		t.Fatal(err)
	}
	// Nothing to bracket, chip-select is per word.
	if err := s.WhileAsserted(func() error { return s.WriteCommand(0x29) }); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{0x11, 0x00}},
		{W: []byte{0xAA, 0x01}},
		{W: []byte{0x01, 0x01}},
		{W: []byte{0x29, 0x00}},
	}
	if diff := cmp.Diff(rec.Ops, want, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Tx difference (-got +want):\n%s", diff)
	}
}

func TestSPIFault(t *testing.T) {
	bus := errors.New("bus fault")
	fc := &failingConn{ok: 2, err: bus}
	s := NewSPIConn(fc)

	err := s.WriteData([]byte{0x01, 0x02, 0x03, 0x04})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("WriteData() = %v, want a *TransportError", err)
	}
	if te.Frame != DataFrame(0x03) || !errors.Is(err, bus) {
		t.Errorf("WriteData() = %v, want a failure on the third byte", err)
	}
	if fc.n != 2 {
		t.Errorf("%d words sent, the remaining bytes must not be sent", fc.n)
	}

	err = s.WriteCommand(0x11)
	if !errors.As(err, &te) || te.Frame != CommandFrame(0x11) {
		t.Errorf("WriteCommand() = %v", err)
	}
}
