// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"imx6ull.io/x/blink/chardev"
	"imx6ull.io/x/blink/internal/config"
)

func registerPins(t *testing.T, pins ...*gpiotest.Pin) {
	t.Helper()
	for _, p := range pins {
		require.NoError(t, gpioreg.Register(p))
		name := p.N
		t.Cleanup(func() { _ = gpioreg.Unregister(name) })
	}
}

func TestOpenDevices(t *testing.T) {
	led := &gpiotest.Pin{N: "BLINKD_LED", Num: 3}
	beep := &gpiotest.Pin{N: "BLINKD_BEEP", Num: 129}
	registerPins(t, led, beep)

	reg, err := openDevices([]config.DeviceConfig{
		{Name: "led", Kind: config.KindSwitch, Pin: "BLINKD_LED", ActiveHigh: true},
		{Name: "timer", Kind: config.KindTimer, Pin: "BLINKD_BEEP", Period: 20 * time.Millisecond},
	})
	require.NoError(t, err)
	assert.Equal(t, gpio.Low, led.Read(), "active high switch starts low")
	assert.Equal(t, gpio.High, beep.Read(), "timer starts inactive")

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, chardev.KindSwitch, all[0].Status().Kind)
	st := all[1].Status()
	assert.Equal(t, chardev.KindTimer, st.Kind)
	assert.EqualValues(t, 20, st.PeriodMillis)
	assert.False(t, st.Armed)

	require.NoError(t, reg.Close())
	assert.Empty(t, reg.All())
}

func TestOpenDevices_missingPin(t *testing.T) {
	led := &gpiotest.Pin{N: "BLINKD_LED2", Num: 3}
	registerPins(t, led)

	_, err := openDevices([]config.DeviceConfig{
		{Name: "led", Kind: config.KindSwitch, Pin: "BLINKD_LED2"},
		{Name: "timer", Kind: config.KindTimer, Pin: "BLINKD_NOPE"},
	})
	assert.ErrorIs(t, err, chardev.ErrPinResolution)
	assert.Contains(t, err.Error(), "timer")
}

func TestOpenDevices_duplicate(t *testing.T) {
	registerPins(t, &gpiotest.Pin{N: "BLINKD_LED3", Num: 3})
	_, err := openDevices([]config.DeviceConfig{
		{Name: "led", Kind: config.KindSwitch, Pin: "BLINKD_LED3"},
		{Name: "led", Kind: config.KindSwitch, Pin: "BLINKD_LED3"},
	})
	assert.Error(t, err)
}
