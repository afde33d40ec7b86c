// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"strconv"

	"imx6ull.io/x/blink/internal/ioc"
)

// timerMagic is the ioctl type byte of the timer device.
const timerMagic = 0xEF

// Cmd is a control command understood by a Timer.
type Cmd uint32

// Timer commands. The values match _IO(0xEF, 1..3).
const (
	CmdOpen      Cmd = ioc.None<<ioc.DirShift | timerMagic<<ioc.TypeShift | 0x1<<ioc.NRShift
	CmdClose     Cmd = ioc.None<<ioc.DirShift | timerMagic<<ioc.TypeShift | 0x2<<ioc.NRShift
	CmdSetPeriod Cmd = ioc.None<<ioc.DirShift | timerMagic<<ioc.TypeShift | 0x3<<ioc.NRShift
)

func (c Cmd) String() string {
	switch c {
	case CmdOpen:
		return "OPEN"
	case CmdClose:
		return "CLOSE"
	case CmdSetPeriod:
		return "SETPERIOD"
	default:
		return "Cmd(0x" + strconv.FormatUint(uint64(c), 16) + ")"
	}
}

// ParseCmd accepts either a command name as returned by Cmd.String or its
// numeric value in any base understood by strconv.ParseUint.
func ParseCmd(s string) (Cmd, bool) {
	for _, c := range []Cmd{CmdOpen, CmdClose, CmdSetPeriod} {
		if s == c.String() {
			return c, true
		}
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, false
	}
	return Cmd(v), true
}
