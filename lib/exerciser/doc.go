// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package exerciser drives the fill/verify/prune cycle against a
// filestore.
//
// An [Exerciser] starts in [Filling] and creates policy-sized artifacts
// until the store reports sizepolicy.ErrNoRoom. It then enters
// [Draining]: every tracked artifact is verified in creation order, and
// if all pass, the artifacts at even positions of the tracked list are
// deleted from the highest even index down. Odd-position artifacts
// survive, so the tracked set ages across cycles instead of being
// cleared. The loop then returns to Filling.
//
// Cancellation is polled once per iteration through the context passed
// to [Exerciser.Run]. A create or a whole drain pass is never
// interrupted part way. Corruption, naming exhaustion, and I/O failures
// end the run with an error; the counters accumulated so far are always
// returned alongside it.
//
// The exerciser owns all of its state and runs on the caller's
// goroutine. Nothing in this package is safe for concurrent use.
package exerciser
