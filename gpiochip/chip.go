// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiochip

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Chips lists the chips found by the driver, pinctrl chips first then by
// label.
var Chips []*Chip

// consumer is reported to the kernel on every line request, "<prog>@<pid>".
var consumer string

// Seams over the system calls, replaced in tests.
var (
	ioctl   = sysIoctl
	closeFd = sysClose
	devGlob = "/dev/gpiochip*"
)

// Chip is an opened /dev/gpiochipN.
type Chip struct {
	name  string
	path  string
	label string
	file  *os.File
	lines []*Line
}

// Open opens the chip at path and reads the description of all its lines.
func Open(path string) (*Chip, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("gpiochip: %w", err)
	}
	c := &Chip{path: path, file: f}
	var info chipInfo
	if err := ioctl(c.fd(), reqChipInfo, unsafe.Pointer(&info)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gpiochip: %s: chip info: %w", path, err)
	}
	c.name = cString(info.name[:])
	c.label = cString(info.label[:])
	if c.label == "" {
		c.label = c.name
	}
	c.lines = make([]*Line, 0, info.lines)
	for i := uint32(0); i < info.lines; i++ {
		li := lineInfo{offset: i}
		if err := ioctl(c.fd(), reqLineInfo, unsafe.Pointer(&li)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("gpiochip: %s: line %d info: %w", path, i, err)
		}
		c.lines = append(c.lines, &Line{
			chip:     c,
			offset:   i,
			name:     cString(li.name[:]),
			consumer: cString(li.consumer[:]),
		})
	}
	return c, nil
}

// Name returns the kernel name, e.g. "gpiochip0".
func (c *Chip) Name() string {
	return c.name
}

// Path returns the device path.
func (c *Chip) Path() string {
	return c.path
}

// Label returns the label of the controller. On i.MX parts it is the
// register base of the bank, e.g. "209c000.gpio".
func (c *Chip) Label() string {
	return c.label
}

// Lines returns all the lines of the chip, indexed by offset.
func (c *Chip) Lines() []*Line {
	return c.lines
}

// ByOffset returns the line at offset, or nil.
func (c *Chip) ByOffset(offset int) *Line {
	if offset < 0 || offset >= len(c.lines) {
		return nil
	}
	return c.lines[offset]
}

// ByName returns the line named name, or nil.
func (c *Chip) ByName(name string) *Line {
	for _, l := range c.lines {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (c *Chip) String() string {
	return fmt.Sprintf("%s(%s, %d lines)", c.name, c.label, len(c.lines))
}

// MarshalJSON describes the chip and its lines.
func (c *Chip) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"Name":  c.name,
		"Path":  c.path,
		"Label": c.label,
		"Lines": c.lines,
	})
}

// Close releases every line request and the chip.
func (c *Chip) Close() error {
	var errs []error
	for _, l := range c.lines {
		errs = append(errs, l.Close())
	}
	if c.file != nil {
		errs = append(errs, c.file.Close())
		c.file = nil
	}
	return errors.Join(errs...)
}

func (c *Chip) fd() uintptr {
	if c.file == nil {
		return ^uintptr(0)
	}
	return c.file.Fd()
}

// ByLabel returns the chip found by the driver with the given label, or nil.
func ByLabel(label string) *Chip {
	for _, c := range Chips {
		if c.label == label {
			return c
		}
	}
	return nil
}

// sortChips orders pinctrl chips first, then by label, so registration does
// not depend on probe order.
func sortChips(chips []*Chip) {
	sort.SliceStable(chips, func(i, j int) bool {
		pi := strings.HasPrefix(chips[i].label, "pinctrl-")
		pj := strings.HasPrefix(chips[j].label, "pinctrl-")
		if pi != pj {
			return pi
		}
		return chips[i].label < chips[j].label
	})
}

// register adds the lines of chips to gpioreg. Named lines keep their name,
// prefixed with the chip name when already taken; unnamed lines become
// "<chip>-<offset>".
func register(chips []*Chip) {
	taken := make(map[string]struct{})
	for _, p := range gpioreg.All() {
		taken[p.Name()] = struct{}{}
	}
	for _, c := range chips {
		for _, l := range c.lines {
			if l.name == "" || l.name == "_" || l.name == "-" {
				l.name = c.name + "-" + strconv.Itoa(int(l.offset))
			} else if _, ok := taken[l.name]; ok {
				l.name = c.name + "-" + l.name
			}
			if _, ok := taken[l.name]; ok {
				continue
			}
			taken[l.name] = struct{}{}
			if err := gpioreg.Register(l); err != nil {
				log.Warn().Err(err).Str("chip", c.name).Stringer("line", l).Msg("gpiochip: register failed")
			}
		}
	}
}

// driverGPIOChip implements periph.Driver.
type driverGPIOChip struct{}

func (d *driverGPIOChip) String() string {
	return "gpiochip"
}

func (d *driverGPIOChip) Prerequisites() []string {
	return nil
}

func (d *driverGPIOChip) After() []string {
	return nil
}

func (d *driverGPIOChip) Init() (bool, error) {
	if !supported {
		return false, errors.New("gpiochip: requires linux")
	}
	items, err := filepath.Glob(devGlob)
	if err != nil {
		return true, fmt.Errorf("gpiochip: %w", err)
	}
	if len(items) == 0 {
		return false, errors.New("gpiochip: no chip found")
	}
	seen := make(map[string]struct{})
	var chips []*Chip
	for _, item := range items {
		c, err := Open(item)
		if err != nil {
			log.Warn().Err(err).Str("path", item).Msg("gpiochip: skipped")
			continue
		}
		// Some kernels expose the same chip under two device nodes.
		if _, ok := seen[c.name]; ok {
			_ = c.Close()
			continue
		}
		seen[c.name] = struct{}{}
		chips = append(chips, c)
	}
	sortChips(chips)
	register(chips)
	Chips = append(Chips, chips...)
	return len(chips) > 0, nil
}

func init() {
	s := filepath.Base(os.Args[0]) + "@" + strconv.Itoa(os.Getpid())
	if len(s) >= maxNameSize {
		s = s[:maxNameSize-1]
	}
	consumer = s
	driverreg.MustRegister(&drvGPIOChip)
}

var drvGPIOChip driverGPIOChip
