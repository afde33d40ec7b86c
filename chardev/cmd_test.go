// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"testing"

	"imx6ull.io/x/blink/internal/ioc"
)

func TestCmdValues(t *testing.T) {
	data := []struct {
		c    Cmd
		nr   uintptr
		want uint32
		name string
	}{
		{CmdOpen, 1, 0xEF01, "OPEN"},
		{CmdClose, 2, 0xEF02, "CLOSE"},
		{CmdSetPeriod, 3, 0xEF03, "SETPERIOD"},
	}
	for _, line := range data {
		if uint32(line.c) != line.want {
			t.Errorf("%s = %#x, want %#x", line.name, uint32(line.c), line.want)
		}
		if got := ioc.IO(timerMagic, line.nr); got != uintptr(line.c) {
			t.Errorf("_IO(0xEF, %d) = %#x, want %#x", line.nr, got, uintptr(line.c))
		}
		if s := line.c.String(); s != line.name {
			t.Errorf("String() = %q, want %q", s, line.name)
		}
	}
	if s := Cmd(0xEF09).String(); s != "Cmd(0xef09)" {
		t.Errorf("String() = %q", s)
	}
}

func TestParseCmd(t *testing.T) {
	data := []struct {
		in   string
		want Cmd
		ok   bool
	}{
		{"OPEN", CmdOpen, true},
		{"SETPERIOD", CmdSetPeriod, true},
		{"61186", CmdClose, true},
		{"0xef03", CmdSetPeriod, true},
		{"0xEF04", Cmd(0xEF04), true},
		{"open", 0, false},
		{"", 0, false},
	}
	for _, line := range data {
		c, ok := ParseCmd(line.in)
		if ok != line.ok || c != line.want {
			t.Errorf("ParseCmd(%q) = %v, %t; want %v, %t", line.in, c, ok, line.want, line.ok)
		}
	}
}
