// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package chardev_test

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"imx6ull.io/x/blink/toggle"
)

// holdClock records schedules and never fires them.
type holdClock struct {
	mu     sync.Mutex
	delays []time.Duration
	live   []*holdTimer
}

type holdTimer struct {
	c       *holdClock
	stopped bool
}

func (h *holdClock) AfterFunc(d time.Duration, f func()) toggle.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &holdTimer{c: h}
	h.delays = append(h.delays, d)
	h.live = append(h.live, t)
	return t
}

func (t *holdTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (h *holdClock) pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.live {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (h *holdClock) lastDelay() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.delays) == 0 {
		return 0
	}
	return h.delays[len(h.delays)-1]
}

// failPin fails every write.
type failPin struct {
	gpiotest.Pin
}

func (f *failPin) Out(gpio.Level) error {
	return errors.New("line busy")
}
