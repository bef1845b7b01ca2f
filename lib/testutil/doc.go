// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by the test suites.
//
// [RequireReceive] and [RequireClosed] bound a test's wait on a channel
// fed by another goroutine, typically one blocked on a fake clock or
// running the exerciser loop. They are the only place tests touch the
// wall clock: a timeout here means the code under test hung.
package testutil
