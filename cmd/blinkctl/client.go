// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"imx6ull.io/x/blink/api"
	"imx6ull.io/x/blink/chardev"
)

// client talks to the blinkd device endpoints.
type client struct {
	base string
	hc   *http.Client
}

// apiError is a non-2xx reply of blinkd.
type apiError struct {
	status int
	body   api.ErrorResponse
}

func (e *apiError) Error() string {
	if e.body.Message != "" {
		return fmt.Sprintf("%s: %s", e.body.Error, e.body.Message)
	}
	return fmt.Sprintf("http status %d", e.status)
}

func (c *client) device(ctx context.Context, name string) (chardev.Status, error) {
	var out api.DeviceResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/devices/"+url.PathEscape(name), nil, &out)
	return out.Device, err
}

func (c *client) write(ctx context.Context, name string, data ...int) error {
	var out api.WriteResponse
	return c.do(ctx, http.MethodPost, "/api/v1/devices/"+url.PathEscape(name)+"/write", api.WriteRequest{Data: data}, &out)
}

func (c *client) ioctl(ctx context.Context, name string, cmd chardev.Cmd, arg int64) (chardev.Status, error) {
	raw, err := json.Marshal(uint32(cmd))
	if err != nil {
		return chardev.Status{}, err
	}
	var out api.DeviceResponse
	err = c.do(ctx, http.MethodPost, "/api/v1/devices/"+url.PathEscape(name)+"/ioctl", api.IoctlRequest{Cmd: raw, Arg: arg}, &out)
	return out.Device, err
}

func (c *client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, &body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		e := &apiError{status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&e.body)
		return e
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
