// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the integrity
// binary.
//
// [GitCommit], [GitDirty], [BuildTime], and [Version] are injected at
// build time via -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/tasleson/integrity/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/integrity
//
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs.
package version
