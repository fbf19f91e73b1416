// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image565_test

import (
	"fmt"
	"image"

	"github.com/GermanBionicSystems/rgbpanel/image565"
)

func Example() {
	// Eight lines of a 480 pixels wide panel, all red.
	img := image565.NewImage(image.Rect(0, 0, 480, 8))
	img.Fill(image565.Red)
	fmt.Println(len(img.Pix), img.Pix[:4])
	// Output: 7680 [0 248 0 248]
}
