// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the binary entrypoint helpers: mapping a
// command's returned error to the process exit status, and the stderr
// message for errors that were not already reported by the command.
package process
