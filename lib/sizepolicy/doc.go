// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package sizepolicy decides how large the next artifact should be.
//
// Half of the volume is always kept free ([ReserveFraction]). While free
// space exceeds that reserve, each file is sized by a uniform draw from
// [MinFileSize, MaxFileSize) clamped to the remaining headroom, so the
// volume converges on the reserve floor through many mid-sized files
// rather than one large one. Once free space is at or below the reserve,
// [Policy.NextFileSize] returns [ErrNoRoom]. That is a signal for the
// caller to verify and prune, not a failure.
//
// The draws come from a PCG source seeded by the run seed, so repeating
// a run with the same seed against the same space observations repeats
// the same size sequence.
package sizepolicy
