// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind is the device family.
type Kind string

const (
	KindSwitch Kind = "switch"
	KindTimer  Kind = "timer"
)

// Handle is an open device file.
type Handle interface {
	io.ReadWriteCloser
	// Ioctl sends a control command with its argument.
	Ioctl(cmd Cmd, arg int64) error
	// Status returns a snapshot of the device state.
	Status() Status
}

// Status is a snapshot of a device.
type Status struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Pin  string `json:"pin"`
	// On is the last state written to a Switch.
	On bool `json:"on"`
	// Armed and PeriodMillis describe a Timer.
	Armed        bool  `json:"armed"`
	PeriodMillis int64 `json:"period_ms"`
}

func deviceLogger(l *zerolog.Logger, name string) zerolog.Logger {
	base := log.Logger
	if l != nil {
		base = *l
	}
	return base.With().Str("device", name).Logger()
}
