// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiochip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
	"unsafe"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Dir is the direction a Line was last requested with.
type Dir uint8

const (
	DirNotSet Dir = iota
	DirInput
	DirOutput
)

func (d Dir) String() string {
	switch d {
	case DirInput:
		return "Input"
	case DirOutput:
		return "Output"
	default:
		return "NotSet"
	}
}

var errEdge = errors.New("gpiochip: edge detection is not supported")

// Line is one line of a Chip. It implements gpio.PinIO.
//
// The line is requested from the kernel on the first In or Out call and kept
// until Close.
type Line struct {
	chip   *Chip
	offset uint32
	name   string

	mu       sync.Mutex
	consumer string // owner reported by the kernel, or ours once requested
	dir      Dir
	pull     gpio.Pull
	fd       int32 // line request file descriptor, 0 when not requested
}

// Name implements pin.Pin.
func (l *Line) Name() string {
	return l.name
}

// Number implements pin.Pin. It is the offset on the chip, which is unrelated
// to any board numbering.
func (l *Line) Number() int {
	return int(l.offset)
}

// String implements conn.Resource.
func (l *Line) String() string {
	return l.chip.name + "/" + strconv.Itoa(int(l.offset)) + "(" + l.name + ")"
}

// Consumer returns the current owner of the line, "" when free.
func (l *Line) Consumer() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.consumer
}

// Dir returns the direction the line was last requested with.
func (l *Line) Dir() Dir {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dir
}

// Halt implements conn.Resource. Nothing is ever in flight.
func (l *Line) Halt() error {
	return nil
}

// Close releases the line request.
func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var err error
	if l.fd != 0 {
		err = closeFd(int(l.fd))
	}
	l.fd = 0
	l.dir = DirNotSet
	l.consumer = ""
	l.pull = gpio.PullNoChange
	return err
}

// In implements gpio.PinIn. Only gpio.NoEdge is supported.
func (l *Line) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errEdge
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cfg := lineConfig{flags: lineFlagInput | pullFlags(pull)}
	if err := l.configure(&cfg); err != nil {
		return fmt.Errorf("gpiochip: %s: %w", l.name, err)
	}
	l.dir = DirInput
	l.pull = pull
	return nil
}

// Read implements gpio.PinIn. It returns gpio.Low when the value cannot be
// read.
func (l *Line) Read() gpio.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd == 0 {
		return gpio.Low
	}
	v := lineValues{mask: 1}
	if err := ioctl(uintptr(l.fd), reqGetValues, unsafe.Pointer(&v)); err != nil {
		return gpio.Low
	}
	return v.bits&1 == 1
}

// WaitForEdge implements gpio.PinIn. Edges are not supported.
func (l *Line) WaitForEdge(time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn.
func (l *Line) Pull() gpio.Pull {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pull
}

// DefaultPull implements gpio.PinIn. The v2 ABI does not report it.
func (l *Line) DefaultPull() gpio.Pull {
	return gpio.PullNoChange
}

// Out implements gpio.PinOut.
//
// The first call requests the line as an output already driven to level, so
// the line never glitches through the other level.
func (l *Line) Out(level gpio.Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dir != DirOutput {
		cfg := outputConfig(bool(level))
		if err := l.configure(&cfg); err != nil {
			return fmt.Errorf("gpiochip: %s: %w", l.name, err)
		}
		l.dir = DirOutput
		l.pull = gpio.PullNoChange
		return nil
	}
	v := lineValues{mask: 1}
	if level {
		v.bits = 1
	}
	if err := ioctl(uintptr(l.fd), reqSetValues, unsafe.Pointer(&v)); err != nil {
		return fmt.Errorf("gpiochip: %s: set value: %w", l.name, err)
	}
	return nil
}

// PWM implements gpio.PinOut.
func (l *Line) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("gpiochip: pwm is not supported")
}

// Func implements pin.PinFunc.
func (l *Line) Func() pin.Func {
	switch l.Dir() {
	case DirInput:
		if l.Read() {
			return gpio.IN_HIGH
		}
		return gpio.IN_LOW
	case DirOutput:
		if l.Read() {
			return gpio.OUT_HIGH
		}
		return gpio.OUT_LOW
	default:
		return pin.FuncNone
	}
}

// SupportedFuncs implements pin.PinFunc.
func (l *Line) SupportedFuncs() []pin.Func {
	return []pin.Func{gpio.IN, gpio.OUT}
}

// SetFunc implements pin.PinFunc.
func (l *Line) SetFunc(f pin.Func) error {
	switch f {
	case gpio.IN:
		return l.In(gpio.PullNoChange, gpio.NoEdge)
	case gpio.OUT_HIGH:
		return l.Out(gpio.High)
	case gpio.OUT, gpio.OUT_LOW:
		return l.Out(gpio.Low)
	default:
		return fmt.Errorf("gpiochip: %s: unsupported function %q", l.name, f)
	}
}

// Deprecated: Use Func. Function implements pin.Pin.
func (l *Line) Function() string {
	return string(l.Func())
}

// MarshalJSON describes the line for diagnostics.
func (l *Line) MarshalJSON() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return json.Marshal(map[string]any{
		"Chip":      l.chip.name,
		"Offset":    l.offset,
		"Name":      l.name,
		"Consumer":  l.consumer,
		"Direction": l.dir.String(),
		"Pull":      l.pull.String(),
	})
}

// configure requests the line with cfg, or reconfigures an existing request.
//
// l.mu must be held.
func (l *Line) configure(cfg *lineConfig) error {
	if l.fd != 0 {
		if err := ioctl(uintptr(l.fd), reqLineConfig, unsafe.Pointer(cfg)); err != nil {
			return fmt.Errorf("line config: %w", err)
		}
		return nil
	}
	var req lineRequest
	req.offsets[0] = l.offset
	req.numLines = 1
	req.config = *cfg
	copy(req.consumer[:maxNameSize-1], consumer)
	if err := ioctl(l.chip.fd(), reqLine, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("line request: %w", err)
	}
	l.fd = req.fd
	l.consumer = consumer
	return nil
}

func pullFlags(p gpio.Pull) uint64 {
	switch p {
	case gpio.PullUp:
		return lineFlagBiasPullUp
	case gpio.PullDown:
		return lineFlagBiasPullDown
	case gpio.Float:
		return lineFlagBiasDisabled
	default:
		return 0
	}
}

var (
	_ gpio.PinIO  = &Line{}
	_ pin.PinFunc = &Line{}
)
