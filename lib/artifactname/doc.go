// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifactname encodes and decodes the self-describing file
// names that let every artifact be verified without a side index.
//
// An artifact name is a small serialized record with its own checksum:
//
//	<content_hash>-<seed>-<declared_size>:<digest(base)>:integrity[.<n>]
//
// The first field ("base") carries everything needed to re-verify or
// recreate the file. The second field is the digest of the base, so a
// damaged name is detected before the damaged data is trusted. The
// third field is the marker identifying artifacts written by this tool,
// optionally followed by a collision suffix .0 through .49.
//
// Decoding validates field counts explicitly and never takes a prefix
// of a longer split. Every failure wraps either [ErrMalformedName] or
// [ErrMetadataCorrupt].
package artifactname
