// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftdi

import (
	"errors"
	"fmt"

	"periph.io/x/d2xx"
)

// Bit modes of FT_SetBitMode used here.
const (
	modeReset        byte = 0x00
	modeAsyncBitbang byte = 0x01
	usbTransferSize       = 4096
	usbTimeoutMillis      = 1000
	latencyMillis         = 2
)

// errShortWrite is returned when the bridge accepted none of the bytes.
var errShortWrite = errors.New("ftdi: bridge accepted no data")

// d2xxError is a non-zero d2xx status returned by step.
type d2xxError struct {
	step string
	code d2xx.Err
}

func (e *d2xxError) Error() string {
	return fmt.Sprintf("ftdi: %s: %s", e.step, e.code)
}

func check(step string, e d2xx.Err) error {
	if e == 0 {
		return nil
	}
	return &d2xxError{step: step, code: e}
}

// countDevices asks the D2XX driver how many bridges are connected.
func countDevices() (int, error) {
	n, e := d2xx.CreateDeviceInfoList()
	return n, check("list devices", e)
}

// bus is the D bus of one opened bridge. It serializes nothing, Dev does.
type bus struct {
	h   d2xx.Handle
	typ DevType
	vid uint16
	pid uint16
}

// dial opens the bridge at index with opener and identifies it.
func dial(opener func(i int) (d2xx.Handle, d2xx.Err), index int) (*bus, error) {
	h, e := opener(index)
	if err := check("open", e); err != nil {
		return nil, err
	}
	t, vid, pid, e := h.GetDeviceInfo()
	if err := check("device info", e); err != nil {
		_ = h.Close()
		return nil, err
	}
	return &bus{h: h, typ: DevType(t), vid: vid, pid: pid}, nil
}

// configure prepares the USB link for small, latency sensitive writes and
// drains stale input. On failure the chip is reset once and configured again.
func (b *bus) configure() error {
	err := b.setLink()
	if err == nil {
		return nil
	}
	if e := check("reset", b.h.ResetDevice()); e != nil {
		return errors.Join(err, e)
	}
	_ = b.setMode(0, modeReset)
	return b.setLink()
}

func (b *bus) setLink() error {
	steps := []struct {
		name string
		run  func() d2xx.Err
	}{
		{"usb parameters", func() d2xx.Err { return b.h.SetUSBParameters(usbTransferSize, 0) }},
		{"timeouts", func() d2xx.Err { return b.h.SetTimeouts(usbTimeoutMillis, usbTimeoutMillis) }},
		{"event chars", func() d2xx.Err { return b.h.SetChars(0, false, 0, false) }},
		{"latency timer", func() d2xx.Err { return b.h.SetLatencyTimer(latencyMillis) }},
	}
	for _, s := range steps {
		if err := check(s.name, s.run()); err != nil {
			return err
		}
	}
	return b.drain()
}

// drain discards whatever the bridge queued for reading.
func (b *bus) drain() error {
	buf := make([]byte, 64)
	for {
		n, e := b.h.GetQueueStatus()
		if err := check("queue status", e); err != nil || n == 0 {
			return err
		}
		if _, e := b.h.Read(buf[:min(int(n), len(buf))]); e != 0 {
			return check("drain", e)
		}
	}
}

// setMode selects the bit mode; in bit-bang mode the 1 bits of dir are
// outputs.
func (b *bus) setMode(dir, mode byte) error {
	return check("bit mode", b.h.SetBitMode(dir, mode))
}

// push drives the outputs of the bus to v.
func (b *bus) push(v byte) error {
	n, e := b.h.Write([]byte{v})
	if err := check("write", e); err != nil {
		return err
	}
	if n != 1 {
		return errShortWrite
	}
	return nil
}

// sample returns the instantaneous level of the 8 lines.
func (b *bus) sample() (byte, error) {
	v, e := b.h.GetBitMode()
	return v, check("sample", e)
}

// release returns every line to input and closes the handle.
func (b *bus) release() error {
	return errors.Join(b.setMode(0, modeReset), check("close", b.h.Close()))
}
