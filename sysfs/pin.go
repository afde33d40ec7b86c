// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin is one GPIO exposed through sysfs. It is exported on first use.
type Pin struct {
	num  int
	name string
	dir  string // Root/gpio<n>

	mu      sync.Mutex
	value   *os.File
	openErr error  // first export or open failure, sticky
	mode    string // "in" or "out" once set by this process
}

// NewPin returns the pin with the global number n under Root.
func NewPin(n int) *Pin {
	return &Pin{
		num:  n,
		name: "GPIO" + strconv.Itoa(n),
		dir:  filepath.Join(Root, "gpio"+strconv.Itoa(n)),
	}
}

func (p *Pin) String() string { return p.name }
func (p *Pin) Name() string   { return p.name }
func (p *Pin) Number() int    { return p.num }

// Halt implements conn.Resource.
func (p *Pin) Halt() error { return nil }

// Deprecated: Use Func. Function implements pin.Pin.
func (p *Pin) Function() string { return string(p.Func()) }

// Func implements pin.PinFunc, from the direction reported by the kernel.
func (p *Pin) Func() pin.Func {
	p.mu.Lock()
	err := p.ensureOpen()
	p.mu.Unlock()
	if err != nil {
		return pin.FuncNone
	}
	d, err := readWord(filepath.Join(p.dir, "direction"))
	if err != nil {
		return pin.FuncNone
	}
	high := bool(p.Read())
	switch {
	case d == "out" && high:
		return gpio.OUT_HIGH
	case d == "out":
		return gpio.OUT_LOW
	case d == "in" && high:
		return gpio.IN_HIGH
	case d == "in":
		return gpio.IN_LOW
	}
	return pin.FuncNone
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
	return p.fail(fmt.Errorf("cannot set function %s", f))
}

// In implements gpio.PinIn. Pull resistors and edges are not available
// through sysfs.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if pull != gpio.PullNoChange && pull != gpio.Float {
		return p.fail(fmt.Errorf("pull %s not available", pull))
	}
	if edge != gpio.NoEdge {
		return p.fail(fmt.Errorf("edge %s not available", edge))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setMode("in")
}

// Read implements gpio.PinIn. It returns gpio.Low until the pin was used.
func (p *Pin) Read() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value == nil {
		return gpio.Low
	}
	b := make([]byte, 1)
	if _, err := p.value.ReadAt(b, 0); err != nil {
		return gpio.Low
	}
	return b[0] == '1'
}

// WaitForEdge implements gpio.PinIn.
func (p *Pin) WaitForEdge(time.Duration) bool { return false }

// Pull implements gpio.PinIn.
func (p *Pin) Pull() gpio.Pull { return gpio.PullNoChange }

// DefaultPull implements gpio.PinIn.
func (p *Pin) DefaultPull() gpio.Pull { return gpio.PullNoChange }

// Out implements gpio.PinOut.
//
// The first call writes "low" or "high" to direction, which switches the pin
// to output already at level l.
func (p *Pin) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != "out" {
		if l {
			return p.setMode("high")
		}
		return p.setMode("low")
	}
	v := "0"
	if l {
		v = "1"
	}
	if _, err := p.value.WriteAt([]byte(v), 0); err != nil {
		return p.fail(err)
	}
	return nil
}

// PWM implements gpio.PinOut.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return p.fail(errors.New("no pwm"))
}

// setMode writes d to the direction attribute. p.mu must be held.
func (p *Pin) setMode(d string) error {
	want := d
	if d != "in" {
		want = "out"
	}
	if p.mode == want && want == "in" {
		return nil
	}
	if err := p.ensureOpen(); err != nil {
		return p.fail(err)
	}
	if err := writeAttr(filepath.Join(p.dir, "direction"), d); err != nil {
		return p.fail(err)
	}
	p.mode = want
	return nil
}

// ensureOpen exports the pin and opens its value file once. p.mu must be
// held.
func (p *Pin) ensureOpen() error {
	if p.value == nil && p.openErr == nil {
		p.value, p.openErr = openValue(p.num, p.dir)
	}
	return p.openErr
}

func (p *Pin) fail(err error) error {
	return fmt.Errorf("sysfs-gpio: %s: %w", p.name, err)
}

var (
	_ conn.Resource = &Pin{}
	_ gpio.PinIO    = &Pin{}
	_ pin.PinFunc   = &Pin{}
)
