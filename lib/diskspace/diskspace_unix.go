// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || freebsd || linux

package diskspace

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Probe returns the capacity of the volume containing path.
func Probe(path string) (Usage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Usage{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	blockSize := uint64(stat.Bsize)
	return Usage{
		Total: uint64(stat.Blocks) * blockSize,
		Free:  uint64(stat.Bavail) * blockSize,
	}, nil
}
