// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package imx6ull

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestParsePin(t *testing.T) {
	data := []struct {
		in     string
		bank   int
		line   int
		number int
	}{
		{"GPIO1_IO03", 1, 3, 3},
		{"gpio1_io3", 1, 3, 3},
		{"GPIO5_IO01", 5, 1, 129},
		{"GPIO4_IO28", 4, 28, 124},
		{"GPIO2_IO21", 2, 21, 53},
	}
	for _, line := range data {
		b, l, err := ParsePin(line.in)
		require.NoError(t, err, line.in)
		assert.Equal(t, line.bank, b.Index, line.in)
		assert.Equal(t, line.line, l, line.in)
		assert.Equal(t, line.number, b.Number(l), line.in)
	}
}

func TestParsePin_invalid(t *testing.T) {
	for _, in := range []string{"", "LED0", "GPIO1", "GPIO0_IO01", "GPIO6_IO01", "GPIO5_IO12", "GPIO2_IO22", "GPIO1_IOx", "GPIOx_IO01"} {
		_, _, err := ParsePin(in)
		assert.ErrorIs(t, err, ErrInvalidPin, in)
	}
}

func TestBank(t *testing.T) {
	b := Banks[0]
	assert.Equal(t, "GPIO1", b.Name())
	assert.Equal(t, "209c000.gpio", b.Label())
	assert.Equal(t, "GPIO1_IO03", b.PinName(3))
	assert.Equal(t, "20ac000.gpio", Banks[4].Label())
	total := 0
	for _, b := range Banks {
		total += b.Lines
	}
	assert.Equal(t, 124, total)
}

func TestBoundBanks(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"20ac000.gpio", "209c000.gpio", "bind", "uevent", "2000000.gpio", "zz.gpio"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}
	banks, err := boundBanks(dir)
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, 1, banks[0].Index)
	assert.Equal(t, 5, banks[1].Index)

	_, err = boundBanks(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRegisterAliases(t *testing.T) {
	led := &gpiotest.Pin{N: "GPIO3", Num: 3}
	beep := &gpiotest.Pin{N: "GPIO129", Num: 129}
	require.NoError(t, gpioreg.Register(led))
	require.NoError(t, gpioreg.Register(beep))
	t.Cleanup(func() {
		for _, n := range []string{LED0, BEEP, "GPIO1_IO03", "GPIO5_IO01", "GPIO3", "GPIO129"} {
			_ = gpioreg.Unregister(n)
		}
	})

	n, err := registerAliases(Banks[:])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Nil(t, gpioreg.ByName("GPIO1_IO04"))

	for alias, want := range map[string]string{
		"GPIO1_IO03": "GPIO3",
		LED0:         "GPIO3",
		"GPIO5_IO01": "GPIO129",
		BEEP:         "GPIO129",
	} {
		p := gpioreg.ByName(alias)
		require.NotNil(t, p, alias)
		r, ok := p.(gpio.RealPin)
		require.True(t, ok, alias)
		assert.Equal(t, want, r.Real().Name(), alias)
	}

	// Writes through the alias reach the pin.
	require.NoError(t, gpioreg.ByName(BEEP).Out(gpio.High))
	assert.Equal(t, gpio.High, beep.Read())
}
