// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"imx6ull.io/x/blink/chardev"
)

// DevicesHandler serves the device endpoints.
type DevicesHandler struct {
	registry *chardev.Registry
}

// Health handles GET /health.
func (h *DevicesHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Devices:   len(h.registry.All()),
		Timestamp: time.Now(),
	})
}

// ListDevices handles GET /devices.
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	all := h.registry.All()
	out := ListDevicesResponse{Devices: make([]chardev.Status, 0, len(all))}
	for _, d := range all {
		out.Devices = append(out.Devices, d.Status())
	}
	out.Count = len(out.Devices)
	c.JSON(http.StatusOK, out)
}

// GetDevice handles GET /devices/:name.
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, DeviceResponse{Device: d.Status()})
}

// Write handles POST /devices/:name/write.
//
// The body is {"data":[1]}. A switch accepts exactly one byte.
func (h *DevicesHandler) Write(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	buf := make([]byte, len(req.Data))
	for i, v := range req.Data {
		if v < 0 || v > 255 {
			badRequest(c, "data values must be in 0~255")
			return
		}
		buf[i] = byte(v)
	}
	n, err := d.Write(buf)
	if err != nil {
		deviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, WriteResponse{Written: n, Device: d.Status()})
}

// Ioctl handles POST /devices/:name/ioctl.
//
// The body is {"cmd":61185,"arg":100}; cmd may also be a name like "OPEN".
func (h *DevicesHandler) Ioctl(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	var req IoctlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cmd, ok := parseCmd(req.Cmd)
	if !ok {
		badRequest(c, "Invalid cmd "+string(req.Cmd))
		return
	}
	if err := d.Ioctl(cmd, req.Arg); err != nil {
		deviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeviceResponse{Device: d.Status()})
}

func (h *DevicesHandler) lookup(c *gin.Context) (chardev.Handle, bool) {
	d, ok := h.registry.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
	}
	return d, ok
}

// parseCmd accepts a JSON number or a JSON string holding a command name or
// number.
func parseCmd(raw json.RawMessage) (chardev.Cmd, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	return chardev.ParseCmd(s)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
	})
}

// deviceError maps a device operation failure to an HTTP response.
func deviceError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "device_error"
	switch {
	case errors.Is(err, chardev.ErrTransfer):
		status, code = http.StatusBadRequest, "transfer_error"
	case errors.Is(err, chardev.ErrInvalidPeriod):
		status, code = http.StatusBadRequest, "invalid_period"
	case errors.Is(err, chardev.ErrUnknownCommand):
		status, code = http.StatusBadRequest, "unknown_command"
	case errors.Is(err, chardev.ErrNotSupported):
		status, code = http.StatusBadRequest, "not_supported"
	case errors.Is(err, chardev.ErrClosed):
		status, code = http.StatusServiceUnavailable, "closed"
	}
	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}
