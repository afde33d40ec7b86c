// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package imx6ull

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPin is returned by ParsePin for a name that is not an existing
// i.MX6ULL GPIO.
var ErrInvalidPin = errors.New("imx6ull: invalid pin")

// Bank is one GPIO controller of the SoC.
type Bank struct {
	Index int    // 1 based, as in GPIO1
	Base  uint64 // register base address
	Lines int    // lines actually bonded out
}

// Banks lists the GPIO banks in order.
var Banks = [...]Bank{
	{1, 0x0209C000, 32},
	{2, 0x020A0000, 22},
	{3, 0x020A4000, 29},
	{4, 0x020A8000, 29},
	{5, 0x020AC000, 12},
}

// Name returns "GPIO<n>".
func (b Bank) Name() string {
	return "GPIO" + strconv.Itoa(b.Index)
}

// Label returns the platform device name of the controller, which is also the
// label of its gpiochip, e.g. "209c000.gpio".
func (b Bank) Label() string {
	return strconv.FormatUint(b.Base, 16) + ".gpio"
}

// PinName returns the reference manual name of line.
func (b Bank) PinName(line int) string {
	return fmt.Sprintf("GPIO%d_IO%02d", b.Index, line)
}

// Number returns the global Linux GPIO number of line.
func (b Bank) Number(line int) int {
	return (b.Index-1)*32 + line
}

// ParsePin parses a name like "GPIO1_IO03" (case insensitive, leading zero
// optional) and returns its bank and line.
func ParsePin(name string) (Bank, int, error) {
	s := strings.ToUpper(name)
	rest, ok := strings.CutPrefix(s, "GPIO")
	if !ok {
		return Bank{}, 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	bank, line, ok := strings.Cut(rest, "_IO")
	if !ok {
		return Bank{}, 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	bi, err := strconv.Atoi(bank)
	if err != nil || bi < 1 || bi > len(Banks) {
		return Bank{}, 0, fmt.Errorf("%w: %q: no such bank", ErrInvalidPin, name)
	}
	b := Banks[bi-1]
	li, err := strconv.Atoi(line)
	if err != nil || li < 0 || li >= b.Lines {
		return Bank{}, 0, fmt.Errorf("%w: %q: %s has %d lines", ErrInvalidPin, name, b.Name(), b.Lines)
	}
	return b, li, nil
}

// bankByBase returns the bank whose registers start at base.
func bankByBase(base uint64) (Bank, bool) {
	for _, b := range Banks {
		if b.Base == base {
			return b, true
		}
	}
	return Bank{}, false
}
