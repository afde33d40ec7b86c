// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package toggle_test

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"imx6ull.io/x/blink/toggle"
)

// manualClock runs callbacks only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	c       *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (m *manualClock) AfterFunc(d time.Duration, f func()) toggle.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{c: m, at: m.now + d, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, running every callback that falls due
// in order.
func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	end := m.now + d
	m.mu.Unlock()
	for {
		m.mu.Lock()
		var next *manualTimer
		for _, t := range m.timers {
			if t.stopped || t.fired || t.at > end {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			m.now = end
			m.mu.Unlock()
			return
		}
		m.now = next.at
		next.fired = true
		m.mu.Unlock()
		next.f()
	}
}

// Pending returns the number of timers that can still fire.
func (m *manualClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type write struct {
	l  gpio.Level
	at time.Time
}

// recordPin is a gpiotest.Pin that remembers every level written to it.
type recordPin struct {
	gpiotest.Pin
	mu     sync.Mutex
	writes []write
	fail   bool
}

func newRecordPin() *recordPin {
	return &recordPin{Pin: gpiotest.Pin{N: "GPIO5_IO01", Num: 129}}
}

func (p *recordPin) Out(l gpio.Level) error {
	p.mu.Lock()
	p.writes = append(p.writes, write{l: l, at: time.Now()})
	fail := p.fail
	p.mu.Unlock()
	if fail {
		return errors.New("bus error")
	}
	return p.Pin.Out(l)
}

func (p *recordPin) setFail(f bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = f
}

// levels returns the levels written after New's initial write.
func (p *recordPin) levels() []gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []gpio.Level
	for _, w := range p.writes[1:] {
		out = append(out, w.l)
	}
	return out
}

func (p *recordPin) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.writes) - 1
}

func (p *recordPin) writesSince(t time.Time) []write {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []write
	for _, w := range p.writes {
		if !w.at.Before(t) {
			out = append(out, w)
		}
	}
	return out
}
