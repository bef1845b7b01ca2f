// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command has already written its own diagnostic;
// verify-file returning 2 for a corrupt artifact is the typical case.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method to tell a
// handled non-zero exit from an unexpected error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
