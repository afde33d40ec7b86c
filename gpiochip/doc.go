// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpiochip exposes the lines of the Linux GPIO character devices
// (/dev/gpiochip*) as periph GPIO pins.
//
// https://docs.kernel.org/userspace-api/gpio/chardev.html
//
// Every line is registered in periph.io/x/conn/v3/gpio/gpioreg: lines named
// by the kernel under their name, unnamed lines as "<chip>-<offset>", for
// example "gpiochip4-1". Board drivers alias those to the names printed on
// the schematics.
package gpiochip
