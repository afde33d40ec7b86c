// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"fmt"
	"strconv"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Dev is an FTDI bridge with its D bus in asynchronous bit-bang mode.
type Dev struct {
	name  string
	index int
	b     *bus
	pins  [8]Pin

	mu  sync.Mutex
	dir byte // 1 bits are outputs
	out byte // last value pushed
}

// newDev switches b to bit-bang mode with every line an input.
func newDev(b *bus, index int, name string) (*Dev, error) {
	if !b.typ.bitbang() {
		return nil, fmt.Errorf("ftdi: %s has no bit-bang D bus", b.typ)
	}
	if err := b.setMode(0, modeAsyncBitbang); err != nil {
		return nil, err
	}
	d := &Dev{name: name, index: index, b: b}
	for i := range d.pins {
		d.pins[i] = Pin{dev: d, bit: 1 << uint(i), num: i, name: name + ".D" + strconv.Itoa(i)}
	}
	return d, nil
}

func (d *Dev) String() string {
	return d.name
}

// Type returns the chip model.
func (d *Dev) Type() DevType {
	return d.b.typ
}

// Header returns the D0~D7 pins.
func (d *Dev) Header() []*Pin {
	out := make([]*Pin, len(d.pins))
	for i := range d.pins {
		out[i] = &d.pins[i]
	}
	return out
}

// Halt implements conn.Resource. Outputs keep their level.
func (d *Dev) Halt() error {
	return nil
}

// Close returns the bus to all inputs and closes the bridge.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dir = 0
	return d.b.release()
}

// drive sets the level of bit, turning it into an output after the value is
// on the bus so it comes up at the requested level.
func (d *Dev) drive(bit byte, l gpio.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.out &^ bit
	if l {
		v |= bit
	}
	if err := d.b.push(v); err != nil {
		return fmt.Errorf("%w (%s)", err, d.name)
	}
	d.out = v
	if d.dir&bit != 0 {
		return nil
	}
	if err := d.b.setMode(d.dir|bit, modeAsyncBitbang); err != nil {
		return err
	}
	d.dir |= bit
	return nil
}

func (d *Dev) setInput(bit byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dir&bit == 0 {
		return nil
	}
	if err := d.b.setMode(d.dir&^bit, modeAsyncBitbang); err != nil {
		return err
	}
	d.dir &^= bit
	return nil
}

// level samples bit, gpio.Low on failure.
func (d *Dev) level(bit byte) gpio.Level {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.b.sample()
	return err == nil && v&bit != 0
}

func (d *Dev) isOut(bit byte) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dir&bit != 0
}
