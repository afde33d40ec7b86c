// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package chardev gives GPIO-backed devices the semantics of the board's
// character devices.
//
// A Switch behaves like /dev/led and /dev/beep: every write carries exactly
// one byte, 1 turns the output on and 0 turns it off.
//
// A Timer behaves like /dev/timer: it does not accept writes and is driven
// with the OPEN, CLOSE and SETPERIOD control commands, which keep the
// numbering of the _IO(0xEF, n) ioctl requests. All handles of a Timer share
// one toggle.Controller; closing a handle tears it down.
package chardev
