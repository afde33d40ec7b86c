// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"imx6ull.io/x/blink/chardev"
)

func TestSwitch_write(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	p := &gpiotest.Pin{N: "GPIO1_IO03", Num: 3, L: gpio.Low}
	s := chardev.NewSwitch("led", chardev.Pin(p), &chardev.SwitchOpts{Logger: &logger})
	h, err := s.Open()
	require.NoError(t, err)
	defer h.Close()
	assert.Equal(t, gpio.High, p.Read(), "opened off")

	data := []struct {
		in   byte
		want gpio.Level
		on   bool
	}{
		{1, gpio.Low, true},
		{0, gpio.High, false},
		{1, gpio.Low, true},
		{7, gpio.Low, true},
		{'1', gpio.Low, true},
	}
	for i, line := range data {
		n, err := h.Write([]byte{line.in})
		require.NoError(t, err, "#%d", i)
		assert.Equal(t, 1, n, "#%d", i)
		assert.Equal(t, line.want, p.Read(), "#%d", i)
		assert.Equal(t, line.on, h.Status().On, "#%d", i)
	}
	assert.Contains(t, buf.String(), "input error")

	n, err := h.Read(make([]byte, 4))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, h.Ioctl(chardev.CmdOpen, 0), chardev.ErrNotSupported)
}

func TestSwitch_transferError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	p := &gpiotest.Pin{N: "GPIO5_IO01"}
	s := chardev.NewSwitch("beep", chardev.Pin(p), &chardev.SwitchOpts{Logger: &logger})
	h, err := s.Open()
	require.NoError(t, err)
	_, err = h.Write([]byte{1})
	require.NoError(t, err)

	for _, in := range [][]byte{nil, {0, 1}} {
		n, err := h.Write(in)
		assert.ErrorIs(t, err, chardev.ErrTransfer)
		assert.Equal(t, 0, n)
	}
	assert.Equal(t, gpio.Low, p.Read(), "state unchanged")
	assert.True(t, h.Status().On)
	assert.Contains(t, buf.String(), "write must be one byte")

	require.NoError(t, h.Close())
	_, err = h.Write([]byte{0})
	assert.ErrorIs(t, err, chardev.ErrClosed)
	assert.Equal(t, gpio.Low, p.Read(), "close keeps the output")
}

func TestSwitch_activeHigh(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO4_IO20", L: gpio.High}
	s := chardev.NewSwitch("relay", chardev.Pin(p), &chardev.SwitchOpts{ActiveHigh: true})
	h, err := s.Open()
	require.NoError(t, err)
	assert.Equal(t, gpio.Low, p.Read())
	_, err = h.Write([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, gpio.High, p.Read())
}

func TestSwitch_pinByName(t *testing.T) {
	p := &gpiotest.Pin{N: "CHARDEV_TEST_LED", Num: 1000}
	require.NoError(t, gpioreg.Register(p))
	defer gpioreg.Unregister(p.N)

	s := chardev.NewSwitch("led", chardev.PinByName("CHARDEV_TEST_LED"), nil)
	h, err := s.Open()
	require.NoError(t, err)
	assert.Equal(t, "CHARDEV_TEST_LED", h.Status().Pin)

	_, err = chardev.NewSwitch("x", chardev.PinByName("CHARDEV_MISSING"), nil).Open()
	assert.ErrorIs(t, err, chardev.ErrPinResolution)
	_, err = chardev.NewSwitch("x", chardev.Pin(&failPin{gpiotest.Pin{N: "GPIO9"}}), nil).Open()
	assert.ErrorIs(t, err, chardev.ErrPinResolution)
}
