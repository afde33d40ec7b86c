// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package toggle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// DefaultPeriod is the toggle period used when Opts.Period is not set.
const DefaultPeriod = 50 * time.Millisecond

var (
	// ErrPinResolution is returned by New when the pin handle is unusable.
	ErrPinResolution = errors.New("toggle: pin resolution failed")
	// ErrInvalidPeriod is returned by SetPeriod for a non-positive period.
	ErrInvalidPeriod = errors.New("toggle: period must be positive")
)

// Opts configures a Controller. The zero value is valid.
type Opts struct {
	// Period is the initial half-period of the square wave. Defaults to
	// DefaultPeriod.
	Period time.Duration
	// ActiveHigh selects the polarity. By default the pin is active low: the
	// inactive level, driven on New and Halt, is gpio.High.
	ActiveHigh bool
	// Clock schedules the firings. Defaults to WallClock.
	Clock Clock
	// Logger receives pin write failures. Defaults to the global zerolog
	// logger.
	Logger *zerolog.Logger
}

// Controller toggles a pin every period while armed.
//
// It implements conn.Resource.
type Controller struct {
	pin   gpio.PinOut
	clock Clock
	idle  gpio.Level
	log   zerolog.Logger

	// fireMu serializes firings with the operations that (re)arm the timer, and
	// is how Stop joins an in-flight firing.
	fireMu sync.Mutex
	level  gpio.Level // only touched with fireMu held

	mu      sync.Mutex
	period  time.Duration
	armed   bool
	gen     uint64 // bumped on every arm and disarm; stale firings compare against it
	pending Timer
}

// New binds pin and drives it to the inactive level. The controller starts
// disarmed.
func New(pin gpio.PinOut, opts *Opts) (*Controller, error) {
	if pin == nil || pin == gpio.PinOut(gpio.INVALID) {
		return nil, fmt.Errorf("%w: no pin", ErrPinResolution)
	}
	if opts == nil {
		opts = &Opts{}
	}
	c := &Controller{
		pin:    pin,
		clock:  opts.Clock,
		idle:   gpio.High,
		period: opts.Period,
		log:    log.Logger,
	}
	if opts.ActiveHigh {
		c.idle = gpio.Low
	}
	if c.clock == nil {
		c.clock = WallClock{}
	}
	if c.period <= 0 {
		c.period = DefaultPeriod
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	c.log = c.log.With().Str("pin", pin.Name()).Logger()
	c.level = c.idle
	if err := pin.Out(c.idle); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPinResolution, pin.Name(), err)
	}
	return c, nil
}

// String implements conn.Resource.
func (c *Controller) String() string {
	return "toggle(" + c.pin.Name() + ")"
}

// Start arms the controller with the current period. When already armed, the
// pending firing is replaced by one a full period from now.
func (c *Controller) Start() {
	c.fireMu.Lock()
	defer c.fireMu.Unlock()
	c.mu.Lock()
	c.gen++
	c.armed = true
	gen, d := c.gen, c.period
	c.mu.Unlock()
	c.arm(gen, d)
}

// Stop disarms the controller.
//
// When Stop returns, no firing is pending and none is running. Calling it on a
// stopped controller is a no-op.
//
// Stop must not be called from the pin driver, as it waits for the firing that
// invoked it.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.gen++
	c.armed = false
	t := c.pending
	c.pending = nil
	c.mu.Unlock()
	if t != nil {
		t.Stop()
	}
	// Join a firing that got past its generation check before the bump above.
	c.fireMu.Lock()
	c.fireMu.Unlock()
}

// SetPeriod changes the period and reschedules the next firing to d from now.
// A stopped controller is armed by it.
//
// A non-positive d returns ErrInvalidPeriod and leaves the controller
// untouched.
func (c *Controller) SetPeriod(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, d)
	}
	c.fireMu.Lock()
	defer c.fireMu.Unlock()
	c.mu.Lock()
	c.period = d
	c.gen++
	c.armed = true
	gen := c.gen
	c.mu.Unlock()
	c.arm(gen, d)
	return nil
}

// Period returns the current period.
func (c *Controller) Period() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// Armed reports whether a firing is pending.
func (c *Controller) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Halt implements conn.Resource.
//
// It stops the controller and forces the pin to the inactive level. It is safe
// to call on a controller that was never started.
func (c *Controller) Halt() error {
	c.Stop()
	c.fireMu.Lock()
	defer c.fireMu.Unlock()
	c.level = c.idle
	if err := c.pin.Out(c.idle); err != nil {
		return fmt.Errorf("toggle: %s: %w", c.pin.Name(), err)
	}
	return nil
}

// arm schedules a firing for generation gen and installs it as the pending
// timer, replacing the previous one.
//
// fireMu must be held.
func (c *Controller) arm(gen uint64, d time.Duration) {
	t := c.clock.AfterFunc(d, func() { c.fire(gen) })
	c.mu.Lock()
	if c.gen != gen {
		// Disarmed or rearmed by someone else since gen was taken.
		c.mu.Unlock()
		t.Stop()
		return
	}
	prev := c.pending
	c.pending = t
	c.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}
}

func (c *Controller) fire(gen uint64) {
	c.fireMu.Lock()
	defer c.fireMu.Unlock()
	c.mu.Lock()
	live := c.gen == gen
	c.mu.Unlock()
	if !live {
		return
	}
	c.level = !c.level
	if err := c.pin.Out(c.level); err != nil {
		c.log.Error().Err(err).Bool("level", bool(c.level)).Msg("toggle: pin write failed")
	}
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return
	}
	d := c.period
	c.mu.Unlock()
	c.arm(gen, d)
}

var _ conn.Resource = &Controller{}
