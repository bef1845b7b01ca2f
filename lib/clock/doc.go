// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Two things in the exerciser depend on time: artifacts created without
// an explicit seed are seeded from the current Unix time, and the run
// loop waits out an idle backoff when a prune pass had nothing to
// delete. Both take a [Clock] so tests can pin the seed and fire the
// backoff without sleeping.
//
// In production:
//
//	store, _ := filestore.New(directory, filestore.Options{Clock: clock.Real()})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	// ... start the goroutine that waits ...
//	fake.WaitForTimers(1)
//	fake.Advance(time.Second)
package clock
