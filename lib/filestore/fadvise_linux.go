// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// dropPageCache asks the kernel to discard cached pages for file. The
// data must already be synced or the advice is a no-op for dirty pages.
func dropPageCache(file *os.File) error {
	if err := unix.Fadvise(int(file.Fd()), 0, 0, unix.FADV_DONTNEED); err != nil {
		return fmt.Errorf("fadvise %s: %w", file.Name(), err)
	}
	return nil
}

func dropPageCacheAt(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()
	return dropPageCache(file)
}
