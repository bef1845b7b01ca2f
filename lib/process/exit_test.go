// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e codedError) Error() string { return fmt.Sprintf("exit %d", e.code) }
func (e codedError) ExitCode() int { return e.code }

func TestReport(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput string
	}{
		{"nil", nil, 0, ""},
		{"plain error", errors.New("boom"), 1, "error: boom\n"},
		{"coded error", codedError{2}, 2, ""},
		{"wrapped coded error", fmt.Errorf("verify: %w", codedError{2}), 2, ""},
		{"coded zero", codedError{0}, 0, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			if code := Report(&output, test.err); code != test.wantCode {
				t.Errorf("Report code = %d, want %d", code, test.wantCode)
			}
			if output.String() != test.wantOutput {
				t.Errorf("Report output = %q, want %q", output.String(), test.wantOutput)
			}
			if code := ExitCode(test.err); code != test.wantCode {
				t.Errorf("ExitCode = %d, want %d", code, test.wantCode)
			}
		})
	}
}
