// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// blinkd serves the LED, buzzer and periodic timer device files of the board
// over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"imx6ull.io/x/blink"
	"imx6ull.io/x/blink/api"
	"imx6ull.io/x/blink/chardev"
	"imx6ull.io/x/blink/internal/config"
	"imx6ull.io/x/blink/internal/logging"
	"imx6ull.io/x/blink/toggle"
)

// openDevices opens every device of cfg. On failure the devices already
// opened are closed.
func openDevices(devices []config.DeviceConfig) (*chardev.Registry, error) {
	reg := &chardev.Registry{}
	for _, d := range devices {
		h, err := openDevice(d)
		if err == nil {
			if err = reg.Add(d.Name, h); err != nil {
				_ = h.Close()
			}
		}
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%s: %w", d.Name, err), reg.Close())
		}
		log.Info().Str("device", d.Name).Str("kind", d.Kind).Str("pin", d.Pin).Msg("device opened")
	}
	return reg, nil
}

func openDevice(d config.DeviceConfig) (chardev.Handle, error) {
	resolve := chardev.PinByName(d.Pin)
	switch d.Kind {
	case config.KindSwitch:
		h, err := chardev.NewSwitch(d.Name, resolve, &chardev.SwitchOpts{ActiveHigh: d.ActiveHigh}).Open()
		if err != nil {
			return nil, err
		}
		return h, nil
	case config.KindTimer:
		h, err := chardev.NewTimer(d.Name, resolve, &toggle.Opts{Period: d.Period, ActiveHigh: d.ActiveHigh}).Open()
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}
}

func mainImpl() error {
	cfgPath := flag.String("config", "/etc/blinkd.yaml", "path to the configuration file")
	addr := flag.String("addr", "", "listen address, overrides the configuration")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := logging.Setup(os.Stderr, cfg.Logger.Level, cfg.Logger.Format); err != nil {
		return err
	}

	state, err := blink.Init()
	if err != nil {
		return err
	}
	for _, d := range state.Loaded {
		log.Debug().Stringer("driver", d).Msg("driver loaded")
	}
	for _, f := range state.Failed {
		log.Debug().Stringer("driver", f.D).Err(f.Err).Msg("driver failed")
	}

	reg, err := openDevices(cfg.Devices)
	if err != nil {
		return err
	}
	defer func() {
		if err := reg.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close devices")
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewRouter(reg, &api.Options{CORSOrigins: cfg.Server.CORSOrigins}).Handler(),
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("Starting API server")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "blinkd: %s.\n", err)
		os.Exit(1)
	}
}
