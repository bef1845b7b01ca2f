// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the integrity command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/version"
)

// Root builds and returns the complete integrity command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "integrity",
		Description: `integrity: filesystem capacity and data-integrity exerciser.

Fills a directory with self-describing files until half the volume is
used, verifies every file it wrote, deletes half of them, and repeats.
Each file's name carries the hash of its content, the seed that
generated it, and its size, so any file can be checked or rebuilt
without a side index.`,
		Subcommands: []*cli.Command{
			runCommand(),
			verifyFileCommand(),
			recreateCommand(),
			reportCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintln(os.Stdout, version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Exercise a scratch volume until interrupted",
				Command:     "integrity run /mnt/scratch",
			},
			{
				Description: "Check a file left behind by a previous run",
				Command:     "integrity verify-file /mnt/scratch/<name>:integrity",
			},
		},
	}
}
