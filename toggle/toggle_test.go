// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package toggle_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"imx6ull.io/x/blink/toggle"
)

func newManual(t *testing.T, opts *toggle.Opts) (*toggle.Controller, *recordPin, *manualClock) {
	t.Helper()
	clk := &manualClock{}
	p := newRecordPin()
	if opts == nil {
		opts = &toggle.Opts{}
	}
	opts.Clock = clk
	c, err := toggle.New(p, opts)
	require.NoError(t, err)
	return c, p, clk
}

func TestNew(t *testing.T) {
	c, p, clk := newManual(t, nil)
	assert.Equal(t, gpio.High, p.Read(), "inactive level is high")
	assert.Equal(t, toggle.DefaultPeriod, c.Period())
	assert.False(t, c.Armed())
	assert.Equal(t, 0, clk.Pending())
	assert.Equal(t, "toggle(GPIO5_IO01)", c.String())
}

func TestNew_activeHigh(t *testing.T) {
	_, p, _ := newManual(t, &toggle.Opts{ActiveHigh: true, Period: 20 * time.Millisecond})
	assert.Equal(t, gpio.Low, p.Read())
}

func TestNew_invalidPin(t *testing.T) {
	_, err := toggle.New(nil, nil)
	assert.ErrorIs(t, err, toggle.ErrPinResolution)

	_, err = toggle.New(gpio.INVALID, nil)
	assert.ErrorIs(t, err, toggle.ErrPinResolution)

	p := newRecordPin()
	p.setFail(true)
	_, err = toggle.New(p, nil)
	assert.ErrorIs(t, err, toggle.ErrPinResolution)
}

func TestStart(t *testing.T) {
	c, p, clk := newManual(t, nil)
	c.Start()
	assert.True(t, c.Armed())
	assert.Empty(t, p.levels(), "Start must not write the pin")

	clk.Advance(49 * time.Millisecond)
	assert.Empty(t, p.levels())
	clk.Advance(time.Millisecond)
	assert.Equal(t, []gpio.Level{gpio.Low}, p.levels())
	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, []gpio.Level{gpio.Low, gpio.High, gpio.Low}, p.levels())
	assert.Equal(t, 1, clk.Pending())
}

func TestStart_twice(t *testing.T) {
	c, p, clk := newManual(t, nil)
	c.Start()
	clk.Advance(30 * time.Millisecond)
	c.Start()
	assert.Equal(t, 1, clk.Pending())

	// The second Start replaced the schedule: nothing at t=50ms.
	clk.Advance(20 * time.Millisecond)
	assert.Empty(t, p.levels())
	clk.Advance(30 * time.Millisecond)
	assert.Len(t, p.levels(), 1)
	assert.Equal(t, 1, clk.Pending())
}

func TestStop(t *testing.T) {
	c, p, clk := newManual(t, nil)
	c.Stop()
	assert.False(t, c.Armed())

	c.Start()
	clk.Advance(50 * time.Millisecond)
	c.Stop()
	c.Stop()
	assert.False(t, c.Armed())
	assert.Equal(t, 0, clk.Pending())

	clk.Advance(time.Second)
	assert.Len(t, p.levels(), 1)
}

func TestSetPeriod_invalid(t *testing.T) {
	c, p, clk := newManual(t, nil)
	for _, d := range []time.Duration{0, -time.Millisecond} {
		err := c.SetPeriod(d)
		assert.ErrorIs(t, err, toggle.ErrInvalidPeriod)
	}
	assert.Equal(t, toggle.DefaultPeriod, c.Period())
	assert.False(t, c.Armed())
	assert.Equal(t, 0, clk.Pending())

	c.Start()
	clk.Advance(49 * time.Millisecond)
	assert.Empty(t, p.levels())
	clk.Advance(time.Millisecond)
	assert.Len(t, p.levels(), 1)
}

func TestSetPeriod_reschedules(t *testing.T) {
	c, p, clk := newManual(t, nil)
	c.Start()
	clk.Advance(30 * time.Millisecond)
	require.NoError(t, c.SetPeriod(100*time.Millisecond))
	assert.Equal(t, 1, clk.Pending())

	// The old schedule would have fired 20ms from now.
	clk.Advance(99 * time.Millisecond)
	assert.Empty(t, p.levels())
	clk.Advance(time.Millisecond)
	assert.Len(t, p.levels(), 1)
	clk.Advance(100 * time.Millisecond)
	assert.Len(t, p.levels(), 2)
}

func TestSetPeriod_samePeriodReschedules(t *testing.T) {
	c, p, clk := newManual(t, nil)
	c.Start()
	clk.Advance(40 * time.Millisecond)
	require.NoError(t, c.SetPeriod(toggle.DefaultPeriod))
	clk.Advance(40 * time.Millisecond)
	assert.Empty(t, p.levels())
	clk.Advance(10 * time.Millisecond)
	assert.Len(t, p.levels(), 1)
}

func TestSetPeriod_arms(t *testing.T) {
	c, p, clk := newManual(t, nil)
	require.NoError(t, c.SetPeriod(10*time.Millisecond))
	assert.True(t, c.Armed())
	clk.Advance(10 * time.Millisecond)
	assert.Len(t, p.levels(), 1)
}

func TestHalt(t *testing.T) {
	c, p, clk := newManual(t, nil)
	require.NoError(t, c.Halt(), "Halt before Start")
	assert.Equal(t, gpio.High, p.Read())

	c.Start()
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, gpio.Low, p.Read())
	require.NoError(t, c.Halt())
	assert.Equal(t, gpio.High, p.Read())
	assert.False(t, c.Armed())
	n := p.count()
	clk.Advance(time.Second)
	assert.Equal(t, n, p.count())

	// A restart begins from the inactive level again.
	c.Start()
	clk.Advance(50 * time.Millisecond)
	assert.Equal(t, gpio.Low, p.Read())
}

func TestHalt_writeError(t *testing.T) {
	c, p, _ := newManual(t, nil)
	p.setFail(true)
	assert.Error(t, c.Halt())
}

func TestFire_writeErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	c, p, clk := newManual(t, &toggle.Opts{Logger: &logger})
	c.Start()
	p.setFail(true)
	clk.Advance(50 * time.Millisecond)
	assert.Contains(t, buf.String(), "pin write failed")
	assert.Contains(t, buf.String(), "GPIO5_IO01")
	assert.True(t, c.Armed(), "a failed write does not disarm")
	assert.Equal(t, 1, clk.Pending())
}

func TestSetPeriod_concurrent(t *testing.T) {
	c, _, clk := newManual(t, nil)
	var wg sync.WaitGroup
	for _, d := range []time.Duration{10 * time.Millisecond, 20 * time.Millisecond} {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				assert.NoError(t, c.SetPeriod(d))
				c.Start()
			}
		}(d)
	}
	wg.Wait()
	p := c.Period()
	assert.Contains(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, p)
	assert.Equal(t, 1, clk.Pending())
	c.Stop()
	assert.Equal(t, 0, clk.Pending())
}

// gatePin blocks every write after the first until released.
type gatePin struct {
	gpiotest.Pin
	mu      sync.Mutex
	n       int
	entered chan struct{}
	release chan struct{}
}

func (g *gatePin) Out(l gpio.Level) error {
	g.mu.Lock()
	g.n++
	n := g.n
	g.mu.Unlock()
	if n == 2 {
		close(g.entered)
		<-g.release
	}
	return g.Pin.Out(l)
}

func (g *gatePin) writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

func TestStop_joinsInFlightFiring(t *testing.T) {
	g := &gatePin{
		Pin:     gpiotest.Pin{N: "GPIO1_IO03", Num: 3},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c, err := toggle.New(g, &toggle.Opts{Period: time.Millisecond})
	require.NoError(t, err)
	c.Start()
	<-g.entered

	stopped := make(chan struct{})
	go func() {
		c.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while a firing was writing the pin")
	case <-time.After(30 * time.Millisecond):
	}
	close(g.release)
	<-stopped

	n := g.writes()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, g.writes(), "no firing after Stop returned")
}

func TestWallClock(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	p := newRecordPin()
	c, err := toggle.New(p, nil)
	require.NoError(t, err)

	c.Start()
	time.Sleep(110 * time.Millisecond)
	assert.GreaterOrEqual(t, p.count(), 2)

	require.NoError(t, c.SetPeriod(100*time.Millisecond))
	since := time.Now()
	time.Sleep(150 * time.Millisecond)
	w := p.writesSince(since)
	require.NotEmpty(t, w)
	assert.GreaterOrEqual(t, w[0].at.Sub(since), 80*time.Millisecond)

	require.NoError(t, c.Halt())
	assert.Equal(t, gpio.High, p.Read())
	n := p.count()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, n, p.count())
}
