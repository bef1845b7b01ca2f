// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tasleson/integrity/lib/report"
)

func TestPrintReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.cbor")
	written := report.Report{
		Directory:    "/mnt/scratch",
		RunSeed:      7,
		StartedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt:   time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC),
		Outcome:      report.OutcomeStopped,
		FilesCreated: 12,
	}
	if err := report.Write(path, written); err != nil {
		t.Fatalf("report.Write: %v", err)
	}

	var stdout bytes.Buffer
	if err := printReport(path, false, &stdout); err != nil {
		t.Fatalf("printReport: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if decoded["outcome"] != "stopped" || decoded["directory"] != "/mnt/scratch" {
		t.Errorf("decoded = %v", decoded)
	}
	if decoded["files_created"] != float64(12) {
		t.Errorf("files_created = %v, want 12", decoded["files_created"])
	}

	stdout.Reset()
	if err := printReport(path, true, &stdout); err != nil {
		t.Fatalf("printReport --diagnostic: %v", err)
	}
	if !strings.Contains(stdout.String(), `"outcome"`) {
		t.Errorf("diagnostic output %q missing outcome key", stdout.String())
	}
}

func TestPrintReportMissing(t *testing.T) {
	var stdout bytes.Buffer
	if err := printReport(filepath.Join(t.TempDir(), "absent.cbor"), false, &stdout); err == nil {
		t.Fatal("printReport of a missing file succeeded")
	}
}
