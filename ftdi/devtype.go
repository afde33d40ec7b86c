// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

// DevType is the FTDI device type as reported by FT_GetDeviceInfo.
//
// Only the chips with an asynchronous bit-bang D bus are named.
type DevType uint32

const (
	DevTypeUnknown   DevType = 3
	DevTypeFT2232C   DevType = 4
	DevTypeFT232R    DevType = 5
	DevTypeFT2232H   DevType = 6
	DevTypeFT4232H   DevType = 7
	DevTypeFT232H    DevType = 8
	DevTypeFTXSeries DevType = 9
)

var devTypeNames = map[DevType]string{
	DevTypeFT2232C:   "FT2232C",
	DevTypeFT232R:    "FT232R",
	DevTypeFT2232H:   "FT2232H",
	DevTypeFT4232H:   "FT4232H",
	DevTypeFT232H:    "FT232H",
	DevTypeFTXSeries: "FTXSeries",
}

func (d DevType) String() string {
	if n, ok := devTypeNames[d]; ok {
		return n
	}
	return "Unknown"
}

// bitbang reports whether the D bus of the device supports asynchronous
// bit-bang mode.
func (d DevType) bitbang() bool {
	_, ok := devTypeNames[d]
	return ok
}
