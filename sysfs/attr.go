// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sysfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// udevGrace bounds the wait for udev to fix the mode of exported files.
const udevGrace = 5 * time.Second

func errAccess(err error) error {
	return fmt.Errorf("%w (run as root or add a udev rule)", err)
}

// writeAttr replaces the content of a sysfs attribute.
func writeAttr(path, v string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	_, err = f.WriteString(v)
	return errors.Join(err, f.Close())
}

// readInt reads a sysfs attribute holding an integer.
func readInt(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(b)))
}

// readWord reads a one word sysfs attribute.
func readWord(path string) (string, error) {
	b, err := os.ReadFile(path)
	return strings.TrimSpace(string(b)), err
}

// openValue opens the value attribute of GPIO n, exporting it first when its
// directory does not exist. EBUSY from export means another process exported
// it already.
func openValue(n int, dir string) (*os.File, error) {
	path := filepath.Join(dir, "value")
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	switch {
	case err == nil:
		return f, nil
	case os.IsPermission(err):
		return nil, errAccess(err)
	case !os.IsNotExist(err):
		return nil, err
	}
	if err := writeAttr(filepath.Join(Root, "export"), strconv.Itoa(n)); err != nil && !errors.Is(err, syscall.EBUSY) {
		if os.IsPermission(err) {
			return nil, errAccess(err)
		}
		return nil, err
	}
	deadline := time.Now().Add(udevGrace)
	for {
		f, err = os.OpenFile(path, os.O_RDWR, 0)
		if err == nil || !os.IsPermission(err) || time.Now().After(deadline) {
			return f, err
		}
		time.Sleep(10 * time.Millisecond)
	}
}
