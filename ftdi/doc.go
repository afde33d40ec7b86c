// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftdi exposes the D0~D7 data bus of FTDI USB bridges (FT232R,
// FT232H) as GPIO output pins, using asynchronous bit-bang mode.
//
// It lets a blinker run on a workstation with a LED wired on an FTDI breakout
// board. Each device registers its pins as "<dev>.D<n>" in gpioreg; when a
// single device is connected they are also aliased as "D<n>".
//
// # Datasheets
//
// http://www.ftdichip.com/Support/Documents/AppNotes/AN_232R-01_Bit_Bang_Mode_Available_For_FT232R_and_Ft245R.pdf
//
// http://www.ftdichip.com/Support/Documents/DataSheets/ICs/DS_FT232H.pdf
package ftdi
