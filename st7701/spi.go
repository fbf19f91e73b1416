// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIOpts configures the hardware transport.
type SPIOpts struct {
	Freq physic.Frequency
	Mode spi.Mode
}

// DefaultSPIOpts is what NewSPI uses when opts is nil. The ST7701 write cycle
// is 66ns minimum, 4MHz leaves plenty of margin on long wires.
var DefaultSPIOpts = SPIOpts{
	Freq: 4 * physic.MegaHertz,
	Mode: spi.Mode0,
}

// SPI is a Transport on a SPI port in 3-wire, 9 bits per word mode.
//
// Each frame is its own transaction, the port drives chip-select.
type SPI struct {
	PerTransaction
	c spi.Conn
}

// NewSPI connects to p with 9 bits per word.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCL to SPI_CLK and CS to SPI_CS. The ST7701 never
// answers so MISO is unused.
func NewSPI(p spi.Port, opts *SPIOpts) (*SPI, error) {
	if opts == nil {
		opts = &DefaultSPIOpts
	}
	c, err := p.Connect(opts.Freq, opts.Mode, 9)
	if err != nil {
		return nil, fmt.Errorf("st7701: %w", err)
	}
	return NewSPIConn(c), nil
}

// NewSPIConn returns a transport on an already connected spi.Conn. The conn
// must have been set up for 9 bits per word.
func NewSPIConn(c spi.Conn) *SPI {
	return &SPI{c: c}
}

// WriteCommand implements Transport.
func (s *SPI) WriteCommand(op byte) error {
	return s.send(CommandFrame(op))
}

// WriteData implements Transport.
//
// It stops at the first byte the bus fails to send.
func (s *SPI) WriteData(data []byte) error {
	for _, b := range data {
		if err := s.send(DataFrame(b)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SPI) String() string {
	return fmt.Sprintf("st7701.SPI{%s}", s.c)
}

// send transmits one word. spidev stores words wider than 8 bits in 16 bits
// of host order, the hosts periph supports are all little endian.
func (s *SPI) send(f Frame) error {
	var w [2]byte
	binary.LittleEndian.PutUint16(w[:], f.Word())
	if err := s.c.Tx(w[:], nil); err != nil {
		return &TransportError{Frame: f, Err: err}
	}
	return nil
}

var _ Transport = &SPI{}
