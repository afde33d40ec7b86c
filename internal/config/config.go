// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the blinkd configuration file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Device kinds.
const (
	KindSwitch = "switch"
	KindTimer  = "timer"
)

// Config is the top-level blinkd configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Logger  LoggerConfig   `yaml:"logger"`
	Devices []DeviceConfig `yaml:"devices"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggerConfig configures zerolog.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// DeviceConfig describes one emulated device file.
type DeviceConfig struct {
	Name       string        `yaml:"name"`
	Kind       string        `yaml:"kind"`
	Pin        string        `yaml:"pin"`
	ActiveHigh bool          `yaml:"active_high"`
	Period     time.Duration `yaml:"period"` // timers only
}

// Defaults returns the configuration of an ALPHA board: the LED as a switch
// and the buzzer driven by the periodic timer.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 5 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
		Devices: []DeviceConfig{
			{Name: "led", Kind: KindSwitch, Pin: "LED0"},
			{Name: "timer", Kind: KindTimer, Pin: "BEEP", Period: 50 * time.Millisecond},
		},
	}
}

// Load reads the YAML file at path over Defaults, applies the environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		// A devices list in the file replaces the default one.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	ApplyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies BLINKD_* environment variables on cfg.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLINKD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BLINKD_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("BLINKD_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("BLINKD_TIMER_PERIOD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// Plain milliseconds, as the SETPERIOD argument.
			if ms, err2 := strconv.Atoi(v); err2 == nil {
				d, err = time.Duration(ms)*time.Millisecond, nil
			}
		}
		if err == nil && d > 0 {
			for i := range cfg.Devices {
				if cfg.Devices[i].Kind == KindTimer {
					cfg.Devices[i].Period = d
				}
			}
		}
	}
}
