// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package exerciser

import "slices"

// PruneEvenIndices removes the files at even indices of files, visiting
// the highest even index first so earlier positions are unaffected by
// each removal. remove is called once per victim, in that order. The
// input slice is not modified.
//
// On a remove error the returned list still holds the failed victim and
// every lower even-index file, and the error is returned unwrapped.
func PruneEvenIndices(files []TrackedFile, remove func(TrackedFile) error) ([]TrackedFile, error) {
	remaining := slices.Clone(files)
	if len(remaining) == 0 {
		return remaining, nil
	}
	last := len(remaining) - 1
	if last%2 != 0 {
		last--
	}
	for index := last; index >= 0; index -= 2 {
		if err := remove(remaining[index]); err != nil {
			return remaining, err
		}
		remaining = slices.Delete(remaining, index, index+1)
	}
	return remaining, nil
}
