// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"errors"

	"imx6ull.io/x/blink/toggle"
)

var (
	// ErrPinResolution is returned by Open when the device pin cannot be found
	// or configured.
	ErrPinResolution = toggle.ErrPinResolution
	// ErrInvalidPeriod is returned for a SETPERIOD with a non-positive period.
	ErrInvalidPeriod = toggle.ErrInvalidPeriod
	// ErrUnknownCommand is returned by Ioctl for an unrecognized command.
	ErrUnknownCommand = errors.New("chardev: unknown command")
	// ErrTransfer is returned by Write for a malformed payload.
	ErrTransfer = errors.New("chardev: malformed transfer")
	// ErrNotSupported is returned for an operation the device does not
	// implement.
	ErrNotSupported = errors.New("chardev: operation not supported")
	// ErrClosed is returned when using a closed handle.
	ErrClosed = errors.New("chardev: handle closed")
)
