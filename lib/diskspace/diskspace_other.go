// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(darwin || freebsd || linux)

package diskspace

import (
	"fmt"
	"runtime"
)

// Probe is not implemented on this platform.
func Probe(path string) (Usage, error) {
	return Usage{}, fmt.Errorf("statfs %s: unsupported platform %s", path, runtime.GOOS)
}
