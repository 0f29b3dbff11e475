// Copyright 2025 deltamin project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build unix

package osutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// RunSignaled runs bin with args, feeding input on stdin and enforcing
// timeout. It reports whether the process was terminated by a signal (the
// usual crash verdict for instrumented targets). A clean exit, a plain
// nonzero exit code, or a timeout all count as "not signaled"; only a
// failure to start or wait on the process is an error.
func RunSignaled(timeout time.Duration, input []byte, bin string, args ...string) (bool, error) {
	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to start %v: %w", bin, err)
	}
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err == nil {
			return false, nil
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return false, fmt.Errorf("failed to wait on %v: %w", bin, err)
		}
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		return ok && status.Signaled(), nil
	case <-timer.C:
		cmd.Process.Kill()
		<-done
		// A hang is resolved to non-reproduction.
		return false, nil
	}
}
