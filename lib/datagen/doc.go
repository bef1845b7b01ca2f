// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package datagen produces the pseudo-random file content written by the
// exerciser.
//
// Content is a pure function of (seed, length): the same inputs always
// produce the same bytes, so any artifact can be rebuilt from the seed
// and size embedded in its file name. Bytes are drawn from an
// alphanumeric alphabet so that artifacts stay printable when an
// operator inspects a corrupt file by hand.
//
// The generator draws output bytes in order from a PCG stream keyed by
// the seed, and the draws never depend on the requested length.
// Consequently Generate(s, n) is always a
// prefix of Generate(s, m) for n <= m. Duplicate mode relies on this:
// files sharing a seed share their leading bytes, which gives
// deduplicating storage something to find.
package datagen
