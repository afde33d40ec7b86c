// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ioc encodes ioctl request numbers the way the Linux
// asm-generic/ioctl.h macros do.
package ioc

// From the linux /usr/include/asm-generic/ioctl.h file.
const (
	None  = 0
	Write = 1
	Read  = 2

	NRBits   = 8
	TypeBits = 8
	SizeBits = 14

	NRShift   = 0
	TypeShift = NRShift + NRBits
	SizeShift = TypeShift + TypeBits
	DirShift  = SizeShift + SizeBits
)

// IOC is _IOC(dir, typ, nr, size).
func IOC(dir, typ, nr, size uintptr) uintptr {
	return dir<<DirShift |
		typ<<TypeShift |
		nr<<NRShift |
		size<<SizeShift
}

// IO is _IO(typ, nr).
func IO(typ, nr uintptr) uintptr {
	return IOC(None, typ, nr, 0)
}

// IOR is _IOR(typ, nr, size).
func IOR(typ, nr, size uintptr) uintptr {
	return IOC(Read, typ, nr, size)
}

// IOWR is _IOWR(typ, nr, size).
func IOWR(typ, nr, size uintptr) uintptr {
	return IOC(Read|Write, typ, nr, size)
}
