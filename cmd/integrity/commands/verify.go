// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/filestore"
)

// Exit statuses of verify-file beyond 0 (valid) and 1 (could not
// inspect).
const exitCorrupt = 2

type verifyParams struct {
	cli.JSONOutput
}

// verifyResult is one entry of verify-file --json output.
type verifyResult struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

const (
	statusOK      = "ok"
	statusCorrupt = "corrupt"
	statusError   = "error"
)

func verifyFileCommand() *cli.Command {
	var params verifyParams
	return &cli.Command{
		Name:    "verify-file",
		Summary: "Check files against the contract in their names",
		Description: `Verify each <path> against the content hash, seed, and size encoded in
its file name. Paths are checked in order and checking stops at the
first failure.

Exit status is 0 when every file is valid, 2 when a file is corrupt
(malformed name, metadata mismatch, size mismatch, or content
mismatch), and 1 when a file cannot be read at all.`,
		Usage: "integrity verify-file <path>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Verify every artifact in a directory",
				Command:     "integrity verify-file /mnt/scratch/*:integrity*",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify-file", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("verify-file requires at least one path")
			}
			return verifyFiles(args, os.Stdout, &params.JSONOutput)
		},
	}
}

// verifyFiles verifies paths in order, stopping at the first failure.
// Corruption returns *cli.ExitError with code 2 after the diagnostic
// is written; an uninspectable file returns the I/O error itself.
func verifyFiles(paths []string, stdout io.Writer, output *cli.JSONOutput) error {
	var results []verifyResult
	var failure error

	for _, path := range paths {
		err := filestore.Verify(path)
		if err == nil {
			results = append(results, verifyResult{Path: path, Status: statusOK})
			if !output.OutputJSON {
				fmt.Fprintf(stdout, "File %s validates [OK]!\n", path)
			}
			continue
		}

		if filestore.IsContractViolation(err) {
			results = append(results, verifyResult{Path: path, Status: statusCorrupt, Reason: err.Error()})
			if !output.OutputJSON {
				fmt.Fprintf(stdout, "File %s corrupt [ERROR]!\n  %v\n", path, err)
			}
			failure = &cli.ExitError{Code: exitCorrupt}
		} else {
			results = append(results, verifyResult{Path: path, Status: statusError, Reason: err.Error()})
			failure = err
		}
		break
	}

	if _, err := output.EmitJSON(stdout, results); err != nil {
		return errors.Join(err, failure)
	}
	return failure
}
