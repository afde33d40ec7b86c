// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package blink

import (
	// Make sure the board driver is registered.
	_ "imx6ull.io/x/blink/imx6ull"
)
