// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"errors"
	"fmt"

	"github.com/tasleson/integrity/lib/artifactname"
)

// Contract violation reasons. Every *VerifyError unwraps to exactly one
// of these.
var (
	ErrMalformedName   = artifactname.ErrMalformedName
	ErrMetadataCorrupt = artifactname.ErrMetadataCorrupt
	ErrSizeMismatch    = errors.New("size mismatch")
	ErrContentMismatch = errors.New("content mismatch")
)

// ErrExceedsCapacity is returned by Create when an explicitly requested
// size is larger than the volume's total capacity.
var ErrExceedsCapacity = errors.New("requested size exceeds volume capacity")

// VerifyError reports an artifact whose name, size, or content breaks
// the contract encoded in its name.
type VerifyError struct {
	// Path is the artifact that failed verification.
	Path string

	// Reason is one of the contract violation sentinels, possibly
	// wrapped with decoding detail.
	Reason error

	// Expected and Actual describe the mismatched values for size and
	// content failures. Empty for name failures.
	Expected string
	Actual   string
}

func (e *VerifyError) Error() string {
	if e.Expected == "" && e.Actual == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: %v (expected = %s, current = %s)", e.Path, e.Reason, e.Expected, e.Actual)
}

// Unwrap returns the reason, so errors.Is matches the sentinels.
func (e *VerifyError) Unwrap() error { return e.Reason }

// IsContractViolation reports whether err is a verification failure as
// opposed to an I/O failure.
func IsContractViolation(err error) bool {
	var verifyError *VerifyError
	return errors.As(err, &verifyError)
}
