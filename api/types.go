// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"time"

	"imx6ull.io/x/blink/chardev"
)

// --- Request DTOs ---

// WriteRequest is the request body for POST /devices/:name/write.
type WriteRequest struct {
	// Data are the bytes to write, each in 0~255.
	Data []int `json:"data"`
}

// IoctlRequest is the request body for POST /devices/:name/ioctl.
type IoctlRequest struct {
	// Cmd is the command code, as a number (61185) or a name ("OPEN").
	Cmd json.RawMessage `json:"cmd" binding:"required"`
	// Arg is the command argument, in milliseconds for SETPERIOD.
	Arg int64 `json:"arg"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Devices   int       `json:"devices"`
	Timestamp time.Time `json:"timestamp"`
}

// ListDevicesResponse is returned from GET /devices.
type ListDevicesResponse struct {
	Devices []chardev.Status `json:"devices"`
	Count   int              `json:"count"`
}

// DeviceResponse is returned from GET /devices/:name and after an ioctl.
type DeviceResponse struct {
	Device chardev.Status `json:"device"`
}

// WriteResponse is returned from POST /devices/:name/write.
type WriteResponse struct {
	Written int            `json:"written"`
	Device  chardev.Status `json:"device"`
}
