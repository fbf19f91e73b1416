// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7701

import (
	"periph.io/x/conn/v3/gpio"
)

// errorHandler latches the first error of a sequence of line changes. Once
// set, the following changes are skipped.
type errorHandler struct {
	err error
}

func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

// clock sends one bit: data is set while SCL is low, the panel latches it on
// the rising edge.
func (eh *errorHandler) clock(scl, sda gpio.PinOut, l gpio.Level) {
	eh.out(scl, gpio.Low)
	eh.out(sda, l)
	eh.out(scl, gpio.High)
}
