// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/filestore"
)

func createArtifact(t *testing.T, directory string, seed uint64, size int64) string {
	t.Helper()
	store, err := filestore.New(directory, filestore.Options{Logger: discardLogger()})
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}
	artifact, err := store.Create(filestore.CreateRequest{Seed: &seed, Size: &size})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return artifact.Path
}

func exitCode(err error) int {
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestVerifyFilesValid(t *testing.T) {
	directory := t.TempDir()
	first := createArtifact(t, directory, 1, 100)
	second := createArtifact(t, directory, 2, 200)

	var stdout bytes.Buffer
	err := verifyFiles([]string{first, second}, &stdout, &cli.JSONOutput{})
	if err != nil {
		t.Fatalf("verifyFiles: %v", err)
	}
	want := "File " + first + " validates [OK]!\nFile " + second + " validates [OK]!\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestVerifyFilesTwoSegmentName(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "abc:integrity")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	err := verifyFiles([]string{path}, &stdout, &cli.JSONOutput{})
	if code := exitCode(err); code != 2 {
		t.Fatalf("exit code = %d (%v), want 2", code, err)
	}
	if !strings.HasPrefix(stdout.String(), "File "+path+" corrupt [ERROR]!") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "malformed artifact name") {
		t.Errorf("stdout %q does not name the reason", stdout.String())
	}
}

func TestVerifyFilesStopsAtFirstCorruptFile(t *testing.T) {
	directory := t.TempDir()
	corrupt := createArtifact(t, directory, 3, 64)
	valid := createArtifact(t, directory, 4, 64)
	if err := os.WriteFile(corrupt, []byte(strings.Repeat("x", 64)), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	err := verifyFiles([]string{corrupt, valid}, &stdout, &cli.JSONOutput{})
	if code := exitCode(err); code != 2 {
		t.Fatalf("exit code = %d (%v), want 2", code, err)
	}
	if strings.Contains(stdout.String(), valid) {
		t.Errorf("checking continued past the corrupt file: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "content mismatch") {
		t.Errorf("stdout %q does not report content mismatch", stdout.String())
	}
}

func TestVerifyFilesUninspectable(t *testing.T) {
	directory := t.TempDir()
	path := createArtifact(t, directory, 5, 10)
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	var stdout bytes.Buffer
	err := verifyFiles([]string{path}, &stdout, &cli.JSONOutput{})
	if code := exitCode(err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("uninspectable file produced stdout %q", stdout.String())
	}
}

func TestVerifyFilesJSON(t *testing.T) {
	directory := t.TempDir()
	valid := createArtifact(t, directory, 6, 32)
	truncated := createArtifact(t, directory, 7, 32)
	if err := os.Truncate(truncated, 8); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	var stdout bytes.Buffer
	err := verifyFiles([]string{valid, truncated}, &stdout, &cli.JSONOutput{OutputJSON: true})
	if code := exitCode(err); code != 2 {
		t.Fatalf("exit code = %d (%v), want 2", code, err)
	}

	var results []verifyResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Status != statusOK || results[0].Reason != "" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Status != statusCorrupt || !strings.Contains(results[1].Reason, "size mismatch") {
		t.Errorf("results[1] = %+v", results[1])
	}
}
