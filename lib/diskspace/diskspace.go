// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package diskspace

// Usage is a point-in-time capacity observation.
type Usage struct {
	// Total is the size of the volume in bytes.
	Total uint64

	// Free is the number of bytes an unprivileged writer may still use.
	Free uint64
}

// Prober reports capacity for the volume containing a path.
type Prober interface {
	Usage(path string) (Usage, error)
}

// Func adapts an ordinary function to the Prober interface.
type Func func(path string) (Usage, error)

// Usage calls f(path).
func (f Func) Usage(path string) (Usage, error) { return f(path) }

// System returns a Prober backed by the operating system.
func System() Prober { return systemProber{} }

type systemProber struct{}

func (systemProber) Usage(path string) (Usage, error) { return Probe(path) }
