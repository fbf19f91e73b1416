// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen1d_test

import (
	"image"
	"log"

	"github.com/GermanBionicSystems/rgbpanel/dpi"
	"github.com/GermanBionicSystems/rgbpanel/image565"
	"github.com/GermanBionicSystems/rgbpanel/screen1d"
)

func Example() {
	t := dpi.Panel480x480
	// Show one scanline per frame, scaled down to 80 columns.
	d, err := screen1d.New(&screen1d.Opts{X: 80, Line: t.HActive, Every: t.VActive})
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	img := image565.NewImage(image.Rect(0, 0, t.HActive, t.VActive))
	img.Fill(image565.Green)
	if _, err := d.Write(img.Pix); err != nil {
		log.Fatal(err)
	}
}
