// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sysfs drives GPIO pins through the legacy /sys/class/gpio
// interface.
//
// https://www.kernel.org/doc/Documentation/gpio/sysfs.txt
//
// It is the fallback for kernels built without the GPIO character device. Pins
// are registered as "GPIO<n>" where n is the global Linux GPIO number.
package sysfs
