// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"
	"periph.io/x/d2xx"
)

// All returns the bridges opened by the driver.
func All() []*Dev {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	return append([]*Dev(nil), drv.devs...)
}

// open opens the bridge at index and puts its D bus in bit-bang mode.
func open(opener func(i int) (d2xx.Handle, d2xx.Err), index int) (*Dev, error) {
	b, err := dial(opener, index)
	if err != nil {
		return nil, err
	}
	if err := b.configure(); err != nil {
		return nil, errors.Join(err, check("close", b.h.Close()))
	}
	name := b.typ.String()
	if index > 0 {
		name = fmt.Sprintf("%s(%d)", name, index)
	}
	d, err := newDev(b, index, name)
	if err != nil {
		return nil, errors.Join(err, check("close", b.h.Close()))
	}
	log.Debug().Str("dev", name).Uint16("vid", b.vid).Uint16("pid", b.pid).Msg("ftdi: bit-bang ready")
	return d, nil
}

// register adds the pins of d to gpioreg and its bus to pinreg. With a single
// bridge the pins are also aliased "D0"~"D7".
func register(d *Dev, alias bool) error {
	hdr := d.Header()
	rows := make([][]pin.Pin, 0, len(hdr))
	for _, p := range hdr {
		if err := gpioreg.Register(p); err != nil {
			return err
		}
		if alias {
			if err := gpioreg.RegisterAlias(fmt.Sprintf("D%d", p.num), p.name); err != nil {
				return err
			}
		}
		rows = append(rows, []pin.Pin{p})
	}
	return pinreg.Register(d.name, rows)
}

// driver implements periph.Driver.
type driver struct {
	mu   sync.Mutex
	devs []*Dev
	// Replaced in tests.
	count  func() (int, error)
	opener func(i int) (d2xx.Handle, d2xx.Err)
}

func (d *driver) String() string {
	return "ftdi"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

func (d *driver) Init() (bool, error) {
	n, err := d.count()
	if err != nil {
		return true, err
	}
	if n == 0 {
		return false, errors.New("ftdi: no bridge connected")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs []error
	for i := 0; i < n; i++ {
		dev, err := open(d.opener, i)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("ftdi: bridge skipped")
			errs = append(errs, err)
			continue
		}
		d.devs = append(d.devs, dev)
		if err := register(dev, n == 1); err != nil {
			return true, err
		}
	}
	return true, errors.Join(errs...)
}

func (d *driver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devs = nil
	d.count = countDevices
	d.opener = d2xx.Open
}

func init() {
	if d2xx.Available {
		drv.reset()
		driverreg.MustRegister(&drv)
	}
}

var drv driver
