// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package imx6ull names the GPIOs of NXP i.MX6ULL boards the way the
// reference manual does.
//
// The SoC has five GPIO banks, GPIO1 to GPIO5, each driven by one gpio-mxc
// controller. A pin is named "GPIO<bank>_IO<line>", for example GPIO1_IO03,
// and its global Linux number is (bank-1)*32+line.
//
// The driver registers every such name as an alias in gpioreg, onto the
// gpiochip line when the GPIO character device is available and onto the
// sysfs pin otherwise, plus the board aliases LED0 and BEEP.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/reference-manual/IMX6ULLRM.pdf
package imx6ull
