// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package gpiochip

import (
	"errors"
	"unsafe"
)

const supported = false

func sysIoctl(fd, req uintptr, arg unsafe.Pointer) error {
	return errors.ErrUnsupported
}

func sysClose(fd int) error {
	return nil
}
