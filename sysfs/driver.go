// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sysfs

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Root is the sysfs GPIO class directory.
var Root = "/sys/class/gpio"

// Pins holds the pins registered by the driver, by global number. Numbering
// has gaps between chips. It is set once by the driver.
var Pins map[int]*Pin

// driverGPIO implements periph.Driver.
type driverGPIO struct{}

func (d *driverGPIO) String() string {
	return "sysfs-gpio"
}

func (d *driverGPIO) Prerequisites() []string {
	return nil
}

func (d *driverGPIO) After() []string {
	return nil
}

// Init registers every line of every gpiochip listed under Root.
func (d *driverGPIO) Init() (bool, error) {
	chips, err := filepath.Glob(filepath.Join(Root, "gpiochip*"))
	if err != nil {
		return true, err
	}
	if len(chips) == 0 {
		return false, errors.New("sysfs-gpio: no gpiochip under " + Root)
	}
	Pins = map[int]*Pin{}
	for _, c := range chips {
		if err := addChip(c); err != nil {
			return true, fmt.Errorf("sysfs-gpio: %s: %w", filepath.Base(c), err)
		}
	}
	return true, nil
}

// addChip registers the ngpio lines starting at base of the chip at path.
func addChip(path string) error {
	base, err := readInt(filepath.Join(path, "base"))
	if err != nil {
		return err
	}
	n, err := readInt(filepath.Join(path, "ngpio"))
	if err != nil {
		return err
	}
	for i := base; i < base+n; i++ {
		if Pins[i] != nil {
			return fmt.Errorf("GPIO%d listed twice", i)
		}
		p := NewPin(i)
		if err := gpioreg.Register(p); err != nil {
			return err
		}
		Pins[i] = p
		if err := gpioreg.RegisterAlias(strconv.Itoa(i), p.name); err != nil {
			log.Debug().Err(err).Int("gpio", i).Msg("sysfs-gpio: numeric alias skipped")
		}
	}
	return nil
}

func init() {
	if runtime.GOOS == "linux" {
		driverreg.MustRegister(&drvGPIO)
	}
}

var drvGPIO driverGPIO
