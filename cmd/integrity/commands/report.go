// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/codec"
	"github.com/tasleson/integrity/lib/report"
)

type reportParams struct {
	Diagnostic bool `flag:"diagnostic" desc:"print CBOR diagnostic notation instead of JSON"`
}

func reportCommand() *cli.Command {
	var params reportParams
	return &cli.Command{
		Name:    "report",
		Summary: "Print a run report written by 'run --report'",
		Description: `Decode the CBOR run report at <path> and print it as JSON.

With --diagnostic the raw CBOR is printed in RFC 8949 diagnostic
notation instead, which is useful when a report does not decode.`,
		Usage: "integrity report <path> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("report", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("report requires exactly one path, got %d arguments", len(args))
			}
			return printReport(args[0], params.Diagnostic, os.Stdout)
		},
	}
}

func printReport(path string, diagnostic bool, stdout io.Writer) error {
	if diagnostic {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading report: %w", err)
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("diagnosing %s: %w", path, err)
		}
		_, err = fmt.Fprintln(stdout, notation)
		return err
	}

	record, err := report.Read(path)
	if err != nil {
		return err
	}
	return cli.WriteJSON(stdout, record)
}
