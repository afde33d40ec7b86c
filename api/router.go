// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package api serves the device files over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"imx6ull.io/x/blink/chardev"
)

// Options configures the router.
type Options struct {
	// CORSOrigins lists the allowed origins. "*" allows all, empty disables
	// CORS.
	CORSOrigins []string
}

// Router holds the Gin engine and the served devices.
type Router struct {
	engine   *gin.Engine
	registry *chardev.Registry
}

// NewRouter creates the API router over the handles of reg.
func NewRouter(reg *chardev.Registry, opts *Options) *Router {
	gin.SetMode(gin.ReleaseMode)
	if opts == nil {
		opts = &Options{}
	}
	engine := gin.New()
	SetupMiddleware(engine, opts.CORSOrigins)
	r := &Router{engine: engine, registry: reg}
	r.setupRoutes()
	return r
}

// Handler returns the router as an http.Handler.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes() {
	h := &DevicesHandler{registry: r.registry}
	r.engine.GET("/health", h.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		devices := v1.Group("/devices")
		{
			devices.GET("", h.ListDevices)
			devices.GET("/:name", h.GetDevice)
			devices.POST("/:name/write", h.Write)
			devices.POST("/:name/ioctl", h.Ioctl)
		}
	}
}
