// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package toggle

import "time"

// Timer is a pending one-shot callback returned by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the callback from running if it has not started yet. It
	// does not wait for a running callback to complete.
	Stop() bool
}

// Clock schedules one-shot callbacks.
//
// AfterFunc must return without running f and without waiting for it: f runs
// later on another goroutine. The Controller calls AfterFunc with its firing
// lock held, and f takes that lock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClock is the Clock backed by the runtime timers.
type WallClock struct{}

// AfterFunc implements Clock.
func (WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

var _ Clock = WallClock{}
