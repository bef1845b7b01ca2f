// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit status.
// Such errors have already been reported to the user.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the process status for err: 0 for nil, the error's
// own code when it has one, else 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Report writes "error: err" to w unless err is nil or carries its own
// exit code, and returns the exit status for err.
func Report(w io.Writer, err error) int {
	code := ExitCode(err)
	var coder exitCoder
	if err != nil && !errors.As(err, &coder) {
		fmt.Fprintf(w, "error: %v\n", err)
	}
	return code
}

// Exit reports err to stderr and exits with its status.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}
