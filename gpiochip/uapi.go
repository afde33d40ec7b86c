// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiochip

import (
	"unsafe"

	"imx6ull.io/x/blink/internal/ioc"
)

// From the /usr/include/linux/gpio.h header file.
const (
	maxNameSize     = 32
	lineNumAttrsMax = 10
	linesMax        = 64

	lineFlagUsed          uint64 = 1 << 0
	lineFlagActiveLow     uint64 = 1 << 1
	lineFlagInput         uint64 = 1 << 2
	lineFlagOutput        uint64 = 1 << 3
	lineFlagBiasPullUp    uint64 = 1 << 8
	lineFlagBiasPullDown  uint64 = 1 << 9
	lineFlagBiasDisabled  uint64 = 1 << 10
	lineAttrIDOutputValue uint32 = 2
)

type chipInfo struct {
	name  [maxNameSize]byte
	label [maxNameSize]byte
	lines uint32
}

type lineAttribute struct {
	id      uint32
	padding uint32
	// value is a union whose interpretation depends on id.
	value uint64
}

type lineConfigAttribute struct {
	attr lineAttribute
	mask uint64
}

type lineConfig struct {
	flags    uint64
	numAttrs uint32
	padding  [5]uint32
	attrs    [lineNumAttrsMax]lineConfigAttribute
}

type lineRequest struct {
	offsets         [linesMax]uint32
	consumer        [maxNameSize]byte
	config          lineConfig
	numLines        uint32
	eventBufferSize uint32
	padding         [5]uint32
	fd              int32
}

type lineValues struct {
	bits uint64
	mask uint64
}

type lineInfo struct {
	name     [maxNameSize]byte
	consumer [maxNameSize]byte
	offset   uint32
	numAttrs uint32
	flags    uint64
	attrs    [lineNumAttrsMax]lineAttribute
	padding  [4]uint32
}

var (
	reqChipInfo   = ioc.IOR(0xB4, 0x01, unsafe.Sizeof(chipInfo{}))
	reqLineInfo   = ioc.IOWR(0xB4, 0x05, unsafe.Sizeof(lineInfo{}))
	reqLine       = ioc.IOWR(0xB4, 0x07, unsafe.Sizeof(lineRequest{}))
	reqLineConfig = ioc.IOWR(0xB4, 0x0D, unsafe.Sizeof(lineConfig{}))
	reqGetValues  = ioc.IOWR(0xB4, 0x0E, unsafe.Sizeof(lineValues{}))
	reqSetValues  = ioc.IOWR(0xB4, 0x0F, unsafe.Sizeof(lineValues{}))
)

// outputConfig returns the line configuration driving one output line at
// level high.
func outputConfig(high bool) lineConfig {
	cfg := lineConfig{flags: lineFlagOutput, numAttrs: 1}
	cfg.attrs[0].attr.id = lineAttrIDOutputValue
	cfg.attrs[0].mask = 1
	if high {
		cfg.attrs[0].attr.value = 1
	}
	return cfg
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
