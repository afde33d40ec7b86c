// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"imx6ull.io/x/blink/toggle"
)

// Timer is a device blinking one pin through a toggle.Controller.
type Timer struct {
	name    string
	resolve Resolver
	opts    toggle.Opts
	log     zerolog.Logger

	mu    sync.Mutex
	ctrl  *toggle.Controller
	pin   string
	users int
}

// NewTimer returns a Timer named name. The pin is resolved, and the period
// reset to opts.Period, when the first handle is opened.
func NewTimer(name string, resolve Resolver, opts *toggle.Opts) *Timer {
	t := &Timer{name: name, resolve: resolve}
	if opts != nil {
		t.opts = *opts
	}
	t.log = deviceLogger(t.opts.Logger, name)
	t.opts.Logger = &t.log
	return t
}

// String returns the device name.
func (t *Timer) String() string {
	return t.name
}

// Open binds a new handle to the timer controller, creating it if no other
// handle is open.
//
// The period goes back to the configured one only when the controller is
// created. Opening a second handle keeps the period set through the first.
func (t *Timer) Open() (*TimerHandle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == nil {
		p, err := t.resolve()
		if err != nil {
			t.log.Error().Err(err).Msg("pin lookup failed")
			return nil, err
		}
		c, err := toggle.New(p, &t.opts)
		if err != nil {
			t.log.Error().Err(err).Msg("pin setup failed")
			return nil, err
		}
		t.ctrl = c
		t.pin = p.Name()
		t.log.Info().Str("pin", t.pin).Dur("period", c.Period()).Msg("timer ready")
	}
	t.users++
	return &TimerHandle{t: t, ctrl: t.ctrl, pin: t.pin}, nil
}

func (t *Timer) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.users--; t.users == 0 {
		t.ctrl = nil
	}
}

// TimerHandle is an open Timer.
type TimerHandle struct {
	t    *Timer
	ctrl *toggle.Controller
	pin  string

	mu     sync.Mutex
	closed bool
}

// Ioctl runs cmd on the timer.
//
// CmdOpen starts the blinker, CmdClose stops it and CmdSetPeriod sets the
// period to arg milliseconds and restarts it. Any other command is logged and
// returns ErrUnknownCommand.
func (h *TimerHandle) Ioctl(cmd Cmd, arg int64) error {
	if h.isClosed() {
		return ErrClosed
	}
	switch cmd {
	case CmdOpen:
		h.ctrl.Start()
	case CmdClose:
		h.ctrl.Stop()
	case CmdSetPeriod:
		// Checked before the conversion, which would overflow.
		if arg <= 0 || arg > math.MaxInt64/int64(time.Millisecond) {
			err := fmt.Errorf("%w: %dms", ErrInvalidPeriod, arg)
			h.t.log.Warn().Err(err).Int64("arg", arg).Msg("period rejected")
			return err
		}
		if err := h.ctrl.SetPeriod(time.Duration(arg) * time.Millisecond); err != nil {
			h.t.log.Warn().Err(err).Int64("arg", arg).Msg("period rejected")
			return err
		}
	default:
		h.t.log.Error().Stringer("cmd", cmd).Msg("unknown command")
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	h.t.log.Debug().Stringer("cmd", cmd).Int64("arg", arg).Msg("ioctl")
	return nil
}

// Read is not supported by the timer.
func (h *TimerHandle) Read(p []byte) (int, error) {
	return 0, ErrNotSupported
}

// Write is not supported by the timer.
func (h *TimerHandle) Write(p []byte) (int, error) {
	return 0, ErrNotSupported
}

// Close stops the blinker and drives the pin to its inactive level.
func (h *TimerHandle) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.closed = true
	h.mu.Unlock()
	err := h.ctrl.Halt()
	h.t.release()
	return err
}

// Status implements Handle.
func (h *TimerHandle) Status() Status {
	return Status{
		Name:         h.t.name,
		Kind:         KindTimer,
		Pin:          h.pin,
		Armed:        h.ctrl.Armed(),
		PeriodMillis: h.ctrl.Period().Milliseconds(),
	}
}

func (h *TimerHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

var _ Handle = &TimerHandle{}
