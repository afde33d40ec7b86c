// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package blink loads the pin providers a blinker needs.
//
// Calling Init registers the GPIOs of the Linux GPIO character device and of
// legacy sysfs, the D bus of connected FTDI bridges and, on ARM, the i.MX6ULL
// board names (GPIO1_IO03, LED0, BEEP) into periph.io/x/conn/v3/gpio/gpioreg.
package blink

import (
	"periph.io/x/conn/v3/driver/driverreg"

	// Make sure the generic pin providers are registered.
	_ "imx6ull.io/x/blink/ftdi"
	_ "imx6ull.io/x/blink/gpiochip"
	_ "imx6ull.io/x/blink/sysfs"
)

// Init calls driverreg.Init() and returns it as-is.
//
// The only difference is that by calling blink.Init(), you are guaranteed to
// have all the pin providers of this module implicitly loaded.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
