// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package toggle drives a square wave on one GPIO output from software
// timers.
//
// A Controller owns one pin, one period and at most one pending timer
// callback. Each firing flips the pin and asks the Clock for the next
// occurrence, so the periodic behavior is a loop of one-shot timers that can
// be replaced or canceled at any point.
//
// Start, Stop and SetPeriod may be called concurrently from any goroutine.
// Stop and Halt do not return while a firing is in progress, so the pin can be
// released right after they return.
package toggle
