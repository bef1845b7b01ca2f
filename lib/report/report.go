// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package report records the outcome of an exercise run.
//
// A report is written once, when a run ends, so an operator can see
// what the run did after the terminal scrollback is gone. The file is
// CBOR (see lib/codec) written atomically: write to a temporary file in
// the same directory, fsync, rename into place, fsync the directory.
// Readers never see a partial report.
//
// Nothing reads a report back during a run. The tracked list it holds
// is a record of what was on disk at exit, not state to resume from.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tasleson/integrity/lib/codec"
)

// Outcome is how a run ended.
type Outcome string

const (
	// OutcomeStopped is a clean stop: cancellation or quit-on-full.
	OutcomeStopped Outcome = "stopped"

	// OutcomeCorruption means an artifact failed verification.
	OutcomeCorruption Outcome = "corruption"

	// OutcomeError is any other fatal error.
	OutcomeError Outcome = "error"
)

// TrackedFile is an artifact the run still owned when it ended.
type TrackedFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Report is the record of one run. Fields use json tags because
// `integrity report` prints the same structure as JSON.
type Report struct {
	// Version is the integrity release that produced the report.
	Version string `json:"version"`

	Directory  string    `json:"directory"`
	RunSeed    uint64    `json:"run_seed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcome    Outcome   `json:"outcome"`

	FilesCreated  int64 `json:"files_created"`
	BytesWritten  int64 `json:"bytes_written"`
	DrainCycles   int64 `json:"drain_cycles"`
	FilesVerified int64 `json:"files_verified"`
	FilesDeleted  int64 `json:"files_deleted"`

	Tracked []TrackedFile `json:"tracked,omitempty"`

	// FailurePath is the artifact that failed verification, set only
	// for OutcomeCorruption.
	FailurePath string `json:"failure_path,omitempty"`

	// FailureReason is the error text for corruption and error
	// outcomes.
	FailureReason string `json:"failure_reason,omitempty"`
}

// Duration returns how long the run took.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Write atomically writes report to path with mode 0644. The parent
// directory must already exist.
func Write(path string, report Report) error {
	data, err := codec.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating temporary report file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary report file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary report file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary report file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming report into place: %w", err)
	}

	return syncDirectory(filepath.Dir(path))
}

// syncDirectory fsyncs directory so the rename is durable.
func syncDirectory(directory string) error {
	handle, err := os.Open(directory)
	if err != nil {
		return fmt.Errorf("opening %s for sync: %w", directory, err)
	}
	defer handle.Close()
	if err := handle.Sync(); err != nil {
		return fmt.Errorf("syncing report directory %s: %w", directory, err)
	}
	return nil
}

// Read decodes the report at path. A missing file returns an error
// wrapping os.ErrNotExist.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := codec.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return report, nil
}
