// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg. It returns a *ValidationError listing every problem.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateServer(cfg, ve)
	validateLogger(cfg, ve)
	validateDevices(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateServer(cfg *Config, ve *ValidationError) {
	if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		ve.Add("server.addr %q: %v", cfg.Server.Addr, err)
	}
	if cfg.Server.ShutdownTimeout < 0 {
		ve.Add("server.shutdown_timeout must be >= 0")
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if _, err := zerolog.ParseLevel(cfg.Logger.Level); err != nil {
		ve.Add("logger.level %q is invalid", cfg.Logger.Level)
	}
	switch cfg.Logger.Format {
	case "console", "json":
	default:
		ve.Add("logger.format must be console or json, got %q", cfg.Logger.Format)
	}
}

func validateDevices(cfg *Config, ve *ValidationError) {
	if len(cfg.Devices) == 0 {
		ve.Add("devices must not be empty")
	}
	seen := make(map[string]bool)
	for i, d := range cfg.Devices {
		if d.Name == "" {
			ve.Add("devices[%d].name is required", i)
		} else if seen[d.Name] {
			ve.Add("devices[%d].name %q is duplicated", i, d.Name)
		}
		seen[d.Name] = true
		if d.Pin == "" {
			ve.Add("devices[%d].pin is required", i)
		}
		switch d.Kind {
		case KindSwitch:
			if d.Period != 0 {
				ve.Add("devices[%d].period is only valid for timers", i)
			}
		case KindTimer:
			if d.Period < 0 {
				ve.Add("devices[%d].period must be > 0", i)
			}
		default:
			ve.Add("devices[%d].kind must be %s or %s, got %q", i, KindSwitch, KindTimer, d.Kind)
		}
	}
}
