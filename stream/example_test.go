// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package stream_test

import (
	"image"
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/rgbpanel/dmaring"
	"github.com/GermanBionicSystems/rgbpanel/dpi"
	"github.com/GermanBionicSystems/rgbpanel/image565"
	"github.com/GermanBionicSystems/rgbpanel/st7701"
	"github.com/GermanBionicSystems/rgbpanel/stream"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()
	t, err := st7701.NewSPI(p, &st7701.DefaultSPIOpts)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := st7701.New(t, gpioreg.ByName("GPIO4"), &st7701.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := dmaring.New(100, 1000)
	if err != nil {
		log.Fatal(err)
	}
	timing := dpi.Panel480x480
	s, err := stream.New(dev, buf, &stream.Opts{Timing: &timing})
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Configure(); err != nil {
		log.Fatal(err)
	}

	// Eight red lines, repeated.
	img := image565.NewImage(image.Rect(0, 0, timing.HActive, 8))
	img.Fill(image565.Red)
	pat, err := stream.NewPattern(img.Pix)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := s.Prefill(pat); err != nil {
		log.Fatal(err)
	}

	e, err := dmaring.NewEmulator(&dmaring.EmulatorOpts{ByteRate: timing.ByteRate()})
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Start(e); err != nil {
		log.Fatal(err)
	}
	log.Fatal(s.Run())
}
