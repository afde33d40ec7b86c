// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// blinkctl drives a blinkd device from digits typed on stdin.
//
// For the timer, 0 stops it, 1 starts it and 2 asks for a new period in
// milliseconds. For the LED and the buzzer, 0 and 1 turn them off and on. Any
// other input exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"imx6ull.io/x/blink/chardev"
	"imx6ull.io/x/blink/internal/logging"
)

// timerCmds maps the digits typed to the timer commands.
var timerCmds = []chardev.Cmd{chardev.CmdClose, chardev.CmdOpen, chardev.CmdSetPeriod}

// session reads digits from in and applies them to one device.
type session struct {
	c    *client
	name string
	in   *bufio.Scanner
	out  io.Writer
}

// next returns the next whitespace separated word, false at the end of input.
func (s *session) next(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// digit reads the next word and returns its first digit, or -1.
func (s *session) digit(prompt string) int {
	w, ok := s.next(prompt)
	if !ok || w == "" || w[0] < '0' || w[0] > '9' {
		return -1
	}
	return int(w[0] - '0')
}

func (s *session) run(ctx context.Context) error {
	st, err := s.c.device(ctx, s.name)
	if err != nil {
		return fmt.Errorf("open %s failed: %w", s.name, err)
	}
	if st.Kind == chardev.KindTimer {
		return s.runTimer(ctx)
	}
	return s.runSwitch(ctx)
}

func (s *session) runSwitch(ctx context.Context) error {
	for {
		d := s.digit("please input 0 or 1, input other exit:")
		if d != 0 && d != 1 {
			return nil
		}
		if err := s.c.write(ctx, s.name, d); err != nil {
			fmt.Fprintf(s.out, "%s control failed: %v\n", s.name, err)
			log.Debug().Err(err).Str("device", s.name).Msg("write")
		}
	}
}

func (s *session) runTimer(ctx context.Context) error {
	var period int64
	for {
		d := s.digit("please input 0 1 2, input other exit:")
		if d < 0 || d >= len(timerCmds) {
			return nil
		}
		if timerCmds[d] == chardev.CmdSetPeriod {
			w, ok := s.next("please input timer period:")
			if !ok {
				return nil
			}
			// An unparsable period keeps the previous one.
			if v, err := strconv.ParseInt(w, 10, 64); err == nil {
				period = v
			}
		}
		st, err := s.c.ioctl(ctx, s.name, timerCmds[d], period)
		if err != nil {
			fmt.Fprintf(s.out, "%s %s failed: %v\n", s.name, timerCmds[d], err)
			continue
		}
		log.Debug().Str("device", s.name).Bool("armed", st.Armed).Int64("period_ms", st.PeriodMillis).Msg("ioctl")
	}
}

func mainImpl() error {
	server := flag.String("server", "http://localhost:8080", "blinkd base URL")
	dev := flag.String("dev", "timer", "device name: led, beep, timer")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logging.Setup(os.Stderr, level, "console"); err != nil {
		return err
	}
	in := bufio.NewScanner(os.Stdin)
	in.Split(bufio.ScanWords)
	s := &session{
		c:    &client{base: strings.TrimSuffix(*server, "/"), hc: &http.Client{Timeout: 10 * time.Second}},
		name: *dev,
		in:   in,
		out:  os.Stdout,
	}
	return s.run(context.Background())
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "blinkctl: %s.\n", err)
		os.Exit(1)
	}
}
