// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package imx6ull

import (
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
)

const driverDir = "/sys/bus/platform/drivers/gpio-mxc"

// boundBanks returns the banks whose controller is bound to the gpio-mxc
// driver, found as "<base>.gpio" entries in dir.
func boundBanks(dir string) ([]Bank, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Bank
	for _, item := range items {
		if b, ok := bankFromEntry(item.Name()); ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

func bankFromEntry(name string) (Bank, bool) {
	prefix, ok := strings.CutSuffix(path.Base(name), ".gpio")
	if !ok {
		return Bank{}, false
	}
	base, err := strconv.ParseUint(prefix, 16, 64)
	if err != nil {
		return Bank{}, false
	}
	return bankByBase(base)
}
