// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/rgbpanel/st7701"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	t, err := st7701.NewSPI(p, nil)
	if err != nil {
		log.Fatal(err)
	}
	rst := gpioreg.ByName("GPIO25")
	if rst == nil {
		log.Fatal("failed to find GPIO25")
	}

	dev, err := st7701.New(t, rst, &st7701.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(); err != nil {
		log.Fatalf("failed to initialize panel: %v", err)
	}
	fmt.Printf("device=%s\n", dev)
}

func ExampleNewBitBang() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Any three GPIO lines will do; the panel does not need a SPI controller.
	t, err := st7701.NewBitBang(gpioreg.ByName("GPIO8"), gpioreg.ByName("GPIO11"), gpioreg.ByName("GPIO10"), nil)
	if err != nil {
		log.Fatal(err)
	}

	dev, err := st7701.New(t, gpioreg.ByName("GPIO25"), nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := dev.Init(); err != nil {
		log.Fatalf("failed to initialize panel: %v", err)
	}
	defer dev.Halt()
}
