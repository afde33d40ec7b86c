// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package imx6ull

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/pin/pinreg"
	"periph.io/x/host/v3/distro"

	"imx6ull.io/x/blink/gpiochip"
)

// Board aliases of the ALIENTEK ALPHA/Mini boards. Both are active low.
const (
	LED0 = "LED0" // GPIO1_IO03
	BEEP = "BEEP" // GPIO5_IO01
)

var boardAliases = []struct{ alias, pin string }{
	{LED0, "GPIO1_IO03"},
	{BEEP, "GPIO5_IO01"},
}

// Present returns true if running on an i.MX6ULL.
func Present() bool {
	if !isArm {
		return false
	}
	for _, c := range distro.DTCompatible() {
		if strings.HasPrefix(c, "fsl,imx6ull") {
			return true
		}
	}
	m := distro.DTModel()
	return strings.Contains(m, "i.MX6 ULL") || strings.Contains(m, "i.MX6ULL")
}

// target returns the name of the registered pin driving line of b: the
// gpiochip line when the controller's chip was found, the sysfs pin
// otherwise. It returns "" when neither is registered.
func target(b Bank, line int) string {
	if c := gpiochip.ByLabel(b.Label()); c != nil {
		if l := c.ByOffset(line); l != nil && gpioreg.ByName(l.Name()) != nil {
			return l.Name()
		}
	}
	if n := "GPIO" + strconv.Itoa(b.Number(line)); gpioreg.ByName(n) != nil {
		return n
	}
	return ""
}

// registerAliases registers the reference manual name of every line of banks,
// then the board aliases. It returns the number of pins aliased.
func registerAliases(banks []Bank) (int, error) {
	n := 0
	for _, b := range banks {
		for line := 0; line < b.Lines; line++ {
			dest := target(b, line)
			if dest == "" {
				continue
			}
			if err := gpioreg.RegisterAlias(b.PinName(line), dest); err != nil {
				return n, err
			}
			n++
		}
	}
	for _, a := range boardAliases {
		b, line, err := ParsePin(a.pin)
		if err != nil {
			return n, err
		}
		dest := target(b, line)
		if dest == "" {
			log.Warn().Str("alias", a.alias).Str("pin", a.pin).Msg("imx6ull: pin not available")
			continue
		}
		// Point directly at the real pin, not at the alias.
		if err := gpioreg.RegisterAlias(a.alias, dest); err != nil {
			return n, err
		}
	}
	return n, nil
}

// registerHeaders registers the board connector holding the LED and the
// buzzer, when both resolved.
func registerHeaders() error {
	led, beep := gpioreg.ByName(LED0), gpioreg.ByName(BEEP)
	if led == nil || beep == nil {
		return nil
	}
	return pinreg.Register("ALPHA", [][]pin.Pin{{led}, {beep}})
}

// driver implements periph.Driver.
type driver struct{}

func (d *driver) String() string {
	return "imx6ull"
}

func (d *driver) Prerequisites() []string {
	return nil
}

// After lets the generic pin providers register the lines first.
func (d *driver) After() []string {
	return []string{"gpiochip", "sysfs-gpio"}
}

func (d *driver) Init() (bool, error) {
	if !Present() {
		return false, errors.New("i.MX6ULL board not detected")
	}
	banks, err := boundBanks(driverDir)
	if err != nil || len(banks) == 0 {
		log.Debug().Err(err).Msg("imx6ull: controller discovery failed, assuming all banks")
		banks = Banks[:]
	}
	n, err := registerAliases(banks)
	if err != nil {
		return true, fmt.Errorf("imx6ull: %w", err)
	}
	if n == 0 {
		return true, errors.New("imx6ull: no GPIO registered by gpiochip nor sysfs-gpio")
	}
	return true, registerHeaders()
}

func init() {
	if isArm {
		driverreg.MustRegister(&drv)
	}
}

var drv driver
