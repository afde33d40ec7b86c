// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
)

// SwitchOpts configures a Switch. The zero value is valid.
type SwitchOpts struct {
	// ActiveHigh drives the pin high for "on". By default the output is active
	// low, like the LED and the buzzer of the board.
	ActiveHigh bool
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Switch is an on/off output controlled with one-byte writes.
type Switch struct {
	name    string
	resolve Resolver
	on      gpio.Level
	log     zerolog.Logger

	mu    sync.Mutex
	pin   gpio.PinOut
	state bool
}

// NewSwitch returns a Switch named name. The pin is resolved on the first
// Open.
func NewSwitch(name string, resolve Resolver, opts *SwitchOpts) *Switch {
	if opts == nil {
		opts = &SwitchOpts{}
	}
	s := &Switch{name: name, resolve: resolve, on: gpio.Low}
	if opts.ActiveHigh {
		s.on = gpio.High
	}
	s.log = deviceLogger(opts.Logger, name)
	return s
}

// String returns the device name.
func (s *Switch) String() string {
	return s.name
}

// Open returns a new handle. The first Open resolves the pin and turns the
// output off.
func (s *Switch) Open() (*SwitchHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pin == nil {
		p, err := s.resolve()
		if err != nil {
			s.log.Error().Err(err).Msg("pin lookup failed")
			return nil, err
		}
		if err := p.Out(!s.on); err != nil {
			s.log.Error().Err(err).Str("pin", p.Name()).Msg("pin setup failed")
			return nil, fmt.Errorf("%w: %s: %v", ErrPinResolution, p.Name(), err)
		}
		s.pin = p
		s.state = false
		s.log.Info().Str("pin", p.Name()).Msg("switch ready")
	}
	return &SwitchHandle{s: s}, nil
}

// set drives the output. s.mu must be held.
func (s *Switch) set(on bool) error {
	l := s.on
	if !on {
		l = !s.on
	}
	if err := s.pin.Out(l); err != nil {
		return fmt.Errorf("chardev: %s: %w", s.name, err)
	}
	s.state = on
	return nil
}

// SwitchHandle is an open Switch.
type SwitchHandle struct {
	s *Switch

	mu     sync.Mutex
	closed bool
}

// Write takes exactly one byte: 1 turns the output on and 0 turns it off. Any
// other value is logged and ignored; the write still succeeds.
//
// A payload of any other length returns ErrTransfer and changes nothing.
func (h *SwitchHandle) Write(p []byte) (int, error) {
	if h.isClosed() {
		return 0, ErrClosed
	}
	if len(p) != 1 {
		h.s.log.Error().Int("len", len(p)).Msg("write must be one byte")
		return 0, fmt.Errorf("%w: got %d bytes, want 1", ErrTransfer, len(p))
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	switch p[0] {
	case 1:
		if err := h.s.set(true); err != nil {
			return 0, err
		}
	case 0:
		if err := h.s.set(false); err != nil {
			return 0, err
		}
	default:
		h.s.log.Error().Uint8("value", p[0]).Msg("input error")
	}
	return 1, nil
}

// Read returns no data, like the driver it replaces.
func (h *SwitchHandle) Read(p []byte) (int, error) {
	if h.isClosed() {
		return 0, ErrClosed
	}
	return 0, nil
}

// Ioctl is not supported by a Switch.
func (h *SwitchHandle) Ioctl(cmd Cmd, arg int64) error {
	return ErrNotSupported
}

// Close releases the handle. The output keeps its state.
func (h *SwitchHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.closed = true
	return nil
}

// Status implements Handle.
func (h *SwitchHandle) Status() Status {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return Status{
		Name: h.s.name,
		Kind: KindSwitch,
		Pin:  h.s.pin.Name(),
		On:   h.s.state,
	}
}

func (h *SwitchHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

var _ Handle = &SwitchHandle{}
