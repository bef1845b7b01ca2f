// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package diskspace reports total and free capacity of the volume
// holding a path.
//
// Free space is the space available to an unprivileged writer
// (f_bavail), not the raw free block count, because that is the space
// the exerciser can actually fill. [System] queries the kernel via
// statfs(2); [Func] adapts a plain function so tests can script the
// free-space sequence a run observes.
package diskspace
