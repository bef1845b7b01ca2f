// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/filestore"
)

func recreateCommand() *cli.Command {
	return &cli.Command{
		Name:    "recreate",
		Summary: "Rebuild a file from its seed and size",
		Description: `Write a new file to <directory> whose content is generated from <seed>
and is exactly <size> bytes long. The seed and size of any artifact are
the second and third '-'-separated fields of its name, so a corrupt file
can be rebuilt and compared byte for byte with the original.

Free space is not checked: any size up to the volume's total capacity
is attempted. If a file with the same name exists, the new one gets a
.0 to .49 suffix.`,
		Usage: "integrity recreate <directory> <seed> <size>",
		Examples: []cli.Example{
			{
				Description: "Rebuild a 1 KiB artifact generated with seed 42",
				Command:     "integrity recreate /var/tmp 42 1024",
			},
		},
		Run: func(args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("recreate requires <directory> <seed> <size>, got %d arguments", len(args))
			}
			logger, err := cli.NewLogger("auto", slog.LevelInfo)
			if err != nil {
				return err
			}
			return recreateFile(args[0], args[1], args[2], os.Stdout, logger)
		},
	}
}

func recreateFile(directory, seedArgument, sizeArgument string, stdout io.Writer, logger *slog.Logger) error {
	seed, err := strconv.ParseUint(seedArgument, 10, 64)
	if err != nil {
		return fmt.Errorf("seed %q is not an unsigned integer", seedArgument)
	}
	size, err := strconv.ParseInt(sizeArgument, 10, 64)
	if err != nil || size < 0 {
		return fmt.Errorf("size %q is not a non-negative integer", sizeArgument)
	}

	store, err := filestore.New(directory, filestore.Options{Logger: logger})
	if err != nil {
		return err
	}
	artifact, err := store.Create(filestore.CreateRequest{Seed: &seed, Size: &size})
	if err != nil {
		return fmt.Errorf("recreating file: %w", err)
	}
	fmt.Fprintf(stdout, "File recreated as %s\n", artifact.Path)
	return nil
}
