// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package filestore creates, verifies, and deletes artifacts in a target
// directory.
//
// Creation is durable before it returns: the file is written, fsynced,
// closed, and its directory is fsynced so the new name survives a power
// loss. The name is claimed with O_CREATE|O_EXCL, so two artifacts with
// the same contract land on distinct collision suffixes even if another
// writer races for the same name. A write that fails part way removes
// the partial file, leaving only artifacts that verify.
//
// Verification trusts nothing but the file name. It decodes the name
// (see package artifactname), compares the on-disk size to the declared
// size, and streams the content through the digest. Contract violations
// are reported as [*VerifyError]; failures to stat or read the file are
// returned as ordinary wrapped I/O errors so callers can tell "corrupt"
// from "could not inspect".
//
// With Options.DropCache set (Linux only) the store evicts an artifact's
// pages after writing and before verifying it, so verification reads
// the storage media rather than the page cache.
package filestore
