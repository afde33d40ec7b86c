// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Resolver returns the pin a device drives. It is called when the device is
// first opened.
type Resolver func() (gpio.PinOut, error)

// PinByName looks name up in gpioreg. Board drivers register aliases such as
// "LED0" and "BEEP" there.
func PinByName(name string) Resolver {
	return func() (gpio.PinOut, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %q is not registered", ErrPinResolution, name)
		}
		return p, nil
	}
}

// Pin returns a Resolver that always returns p.
func Pin(p gpio.PinOut) Resolver {
	return func() (gpio.PinOut, error) {
		if p == nil {
			return nil, fmt.Errorf("%w: no pin", ErrPinResolution)
		}
		return p, nil
	}
}
