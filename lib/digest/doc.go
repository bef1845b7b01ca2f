// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides the single content-addressing hash used for
// both artifact data and the self-check field of artifact names.
//
// The digest is BLAKE3-256 rendered as 64 lowercase hex characters.
// Collision resistance matters here only in the accidental sense: two
// different artifacts in one directory must not share a digest by
// chance.
//
// The API surface:
//
//   - [Bytes] and [String] -- digest of an in-memory value
//   - [Reader] -- streams a reader through the hash, returning the
//     digest and the number of bytes consumed
//   - [File] -- streams a file through the hash with constant memory
//     usage regardless of file size
//   - [Parse] and [Valid] -- validate the hex form
//
// This package has no dependencies on other packages in this module.
package digest
