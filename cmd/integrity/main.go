// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// integrity exercises a filesystem by filling it with self-verifying
// files, checking them, and pruning them in a loop. See
// "integrity --help" for the command surface.
package main

import (
	"os"

	"github.com/tasleson/integrity/cmd/integrity/commands"
	"github.com/tasleson/integrity/lib/process"
)

func main() {
	// Commands that print their own diagnostic (verify-file on a corrupt
	// file) return an error carrying the exit code; process.Exit does
	// not print a second "error:" line for those.
	process.Exit(run())
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
