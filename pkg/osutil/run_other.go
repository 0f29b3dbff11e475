// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !unix

package osutil

import (
	"fmt"
	"time"
)

// Crash detection relies on process termination signals, which only the
// unix implementation can observe.
func RunSignaled(timeout time.Duration, input []byte, bin string, args ...string) (bool, error) {
	return false, fmt.Errorf("target execution is not supported on this platform")
}
