// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleReport() Report {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Report{
		Version:       "0.1.0",
		Directory:     "/mnt/scratch",
		RunSeed:       1772366400,
		StartedAt:     started,
		FinishedAt:    started.Add(90 * time.Minute),
		Outcome:       OutcomeCorruption,
		FilesCreated:  120,
		BytesWritten:  503316480,
		DrainCycles:   3,
		FilesVerified: 310,
		FilesDeleted:  60,
		Tracked: []TrackedFile{
			{Path: "/mnt/scratch/a:b:integrity", Size: 4096},
			{Path: "/mnt/scratch/c:d:integrity.0", Size: 512},
		},
		FailurePath:   "/mnt/scratch/c:d:integrity.0",
		FailureReason: "content mismatch",
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")
	original := sampleReport()

	if err := Write(path, original); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Version != original.Version {
		t.Errorf("Version = %q, want %q", got.Version, original.Version)
	}
	if got.Directory != original.Directory {
		t.Errorf("Directory = %q, want %q", got.Directory, original.Directory)
	}
	if got.RunSeed != original.RunSeed {
		t.Errorf("RunSeed = %d, want %d", got.RunSeed, original.RunSeed)
	}
	if !got.StartedAt.Equal(original.StartedAt) || !got.FinishedAt.Equal(original.FinishedAt) {
		t.Errorf("times = %v..%v, want %v..%v", got.StartedAt, got.FinishedAt, original.StartedAt, original.FinishedAt)
	}
	if got.Outcome != OutcomeCorruption {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeCorruption)
	}
	if got.FilesCreated != 120 || got.BytesWritten != 503316480 || got.DrainCycles != 3 ||
		got.FilesVerified != 310 || got.FilesDeleted != 60 {
		t.Errorf("counters = %+v", got)
	}
	if len(got.Tracked) != 2 || got.Tracked[1] != original.Tracked[1] {
		t.Errorf("Tracked = %+v, want %+v", got.Tracked, original.Tracked)
	}
	if got.FailurePath != original.FailurePath || got.FailureReason != original.FailureReason {
		t.Errorf("failure = %q/%q", got.FailurePath, got.FailureReason)
	}
	if got.Duration() != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", got.Duration())
	}
}

func TestWriteOverwritesAndLeavesNoTemporary(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "run.cbor")

	first := sampleReport()
	if err := Write(path, first); err != nil {
		t.Fatalf("Write first: %v", err)
	}
	second := sampleReport()
	second.Outcome = OutcomeStopped
	second.FailurePath = ""
	second.FailureReason = ""
	if err := Write(path, second); err != nil {
		t.Fatalf("Write second: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Outcome != OutcomeStopped || got.FailurePath != "" {
		t.Errorf("second write not visible: %+v", got)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the report", len(entries))
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	directory := t.TempDir()
	first := filepath.Join(directory, "first.cbor")
	second := filepath.Join(directory, "second.cbor")
	if err := Write(first, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(second, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Error("identical reports encoded differently")
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.cbor"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read error = %v, want os.ErrNotExist", err)
	}
	if !strings.HasPrefix(err.Error(), "reading report: ") {
		t.Errorf("Read error %q lacks context", err)
	}
}

func TestSyncDirectoryReportsErrors(t *testing.T) {
	if err := syncDirectory(t.TempDir()); err != nil {
		t.Fatalf("syncDirectory: %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	err := syncDirectory(missing)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("syncDirectory(%s) = %v, want os.ErrNotExist", missing, err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the directory", err)
	}
}

func TestReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")
	if err := os.WriteFile(path, []byte{0xa2, 0x61, 0x78}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read of a corrupt report succeeded")
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "run.cbor")
	if err := Write(path, sampleReport()); err == nil {
		t.Fatal("Write into a missing directory succeeded")
	}
}
