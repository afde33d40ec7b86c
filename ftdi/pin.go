// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin is the line Dn of a Dev. Its state lives in the Dev.
type Pin struct {
	dev  *Dev
	bit  byte
	num  int
	name string
}

func (p *Pin) String() string { return p.name }
func (p *Pin) Name() string   { return p.name }
func (p *Pin) Number() int    { return p.num }

// Halt implements conn.Resource.
func (p *Pin) Halt() error { return nil }

// Deprecated: Use Func. Function implements pin.Pin.
func (p *Pin) Function() string { return string(p.Func()) }

// Func implements pin.PinFunc.
func (p *Pin) Func() pin.Func {
	out, high := p.dev.isOut(p.bit), bool(p.Read())
	switch {
	case out && high:
		return gpio.OUT_HIGH
	case out:
		return gpio.OUT_LOW
	case high:
		return gpio.IN_HIGH
	default:
		return gpio.IN_LOW
	}
}

// SupportedFuncs implements pin.PinFunc.
func (p *Pin) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN, gpio.OUT}
}

// SetFunc implements pin.PinFunc.
func (p *Pin) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return p.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT, gpio.OUT_LOW, gpio.OUT_HIGH:
		return p.Out(f == gpio.OUT_HIGH)
	}
	return fmt.Errorf("ftdi: %s: cannot set function %s", p.name, f)
}

// In implements gpio.PinIn. The lines have fixed weak pull ups and no edge
// detection.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return fmt.Errorf("ftdi: %s: no edge detection", p.name)
	}
	if pull != gpio.PullNoChange && pull != gpio.PullUp {
		return fmt.Errorf("ftdi: %s: pull %s not available", p.name, pull)
	}
	return p.dev.setInput(p.bit)
}

// Read implements gpio.PinIn.
func (p *Pin) Read() gpio.Level { return p.dev.level(p.bit) }

// WaitForEdge implements gpio.PinIn.
func (p *Pin) WaitForEdge(time.Duration) bool { return false }

// Pull implements gpio.PinIn.
func (p *Pin) Pull() gpio.Pull { return gpio.PullUp }

// DefaultPull implements gpio.PinIn.
func (p *Pin) DefaultPull() gpio.Pull { return gpio.PullUp }

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error { return p.dev.drive(p.bit, l) }

// PWM implements gpio.PinOut.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return fmt.Errorf("ftdi: %s: no pwm", p.name)
}

var (
	_ gpio.PinIO  = &Pin{}
	_ pin.PinFunc = &Pin{}
)
