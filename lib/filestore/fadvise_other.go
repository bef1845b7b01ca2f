// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package filestore

import "os"

func dropPageCache(*os.File) error { return nil }

func dropPageCacheAt(string) error { return nil }
