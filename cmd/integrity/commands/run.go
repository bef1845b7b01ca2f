// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/tasleson/integrity/cmd/integrity/cli"
	"github.com/tasleson/integrity/lib/clock"
	"github.com/tasleson/integrity/lib/config"
	"github.com/tasleson/integrity/lib/diskspace"
	"github.com/tasleson/integrity/lib/exerciser"
	"github.com/tasleson/integrity/lib/filestore"
	"github.com/tasleson/integrity/lib/report"
	"github.com/tasleson/integrity/lib/sizepolicy"
	"github.com/tasleson/integrity/lib/version"
)

type runParams struct {
	ConfigPath string `flag:"config" desc:"YAML config file (default: $INTEGRITY_CONFIG, else built-in defaults)"`
	QuitOnFull bool   `flag:"quit-on-full" desc:"stop after the first full verification pass instead of pruning"`
	Duplicate  bool   `flag:"duplicate" desc:"every file shares the run seed and differs only in length"`
	Seed       uint64 `flag:"seed" desc:"run seed (default: current Unix time)"`
	DropCache  bool   `flag:"drop-cache" desc:"evict file pages after writing and before verifying (Linux)"`
	ReportPath string `flag:"report" desc:"write a CBOR run report to this path at exit"`
	LogFormat  string `flag:"log-format" desc:"log format: auto, text, or json"`
	LogLevel   string `flag:"log-level" desc:"log level: debug, info, warn, or error"`
}

// runOptions is the resolved configuration of one run, after config
// file and flags are merged.
type runOptions struct {
	QuitOnFull  bool
	Duplicate   bool
	Seed        *uint64
	DropCache   bool
	IdleBackoff time.Duration
	ReportPath  string
	FileMode    os.FileMode

	// Clock and Space default to the real implementations.
	Clock clock.Clock
	Space diskspace.Prober
}

func runCommand() *cli.Command {
	var params runParams
	var command *cli.Command
	command = &cli.Command{
		Name:    "run",
		Summary: "Fill, verify, and prune files in a directory until interrupted",
		Description: `Exercise <directory> until SIGINT or SIGTERM, or until a fatal error.

The loop alternates between two phases. While filling, it creates files
of random size (512 bytes to 8 MiB) until only half of the volume is
free. It then verifies every file it created, in creation order, and
deletes those at even positions of its list, so older files survive
across cycles. Any verification failure ends the run with exit status 1.

Counters are printed on every exit. Flags override values from the
config file only when given explicitly.`,
		Usage: "integrity run <directory> [flags]",
		Examples: []cli.Example{
			{
				Description: "Run with a fixed seed so file sizes are reproducible",
				Command:     "integrity run --seed 1234 /mnt/scratch",
			},
			{
				Description: "Fill once, verify everything, and exit",
				Command:     "integrity run --quit-on-full --report /var/tmp/run.cbor /mnt/scratch",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("run requires exactly one directory argument, got %d", len(args))
			}

			cfg, err := config.Resolve(params.ConfigPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applyRunFlags(cfg, &params, command.Changed)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			options, err := runOptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			logger, err := cli.NewLogger(cfg.Log.Format, cfg.LogLevel())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runExercise(ctx, args[0], options, os.Stdout, logger)
		},
	}
	return command
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cfg *config.Config, params *runParams, changed func(string) bool) {
	if changed("quit-on-full") {
		cfg.Run.QuitOnFull = params.QuitOnFull
	}
	if changed("duplicate") {
		cfg.Run.Duplicate = params.Duplicate
	}
	if changed("seed") {
		seed := params.Seed
		cfg.Run.Seed = &seed
	}
	if changed("drop-cache") {
		cfg.Run.DropCache = params.DropCache
	}
	if changed("report") {
		cfg.Run.ReportPath = params.ReportPath
	}
	if changed("log-format") {
		cfg.Log.Format = params.LogFormat
	}
	if changed("log-level") {
		cfg.Log.Level = params.LogLevel
	}
}

func runOptionsFromConfig(cfg *config.Config) (runOptions, error) {
	idleBackoff, err := cfg.IdleBackoff()
	if err != nil {
		return runOptions{}, err
	}
	fileMode, err := cfg.FileMode()
	if err != nil {
		return runOptions{}, err
	}
	return runOptions{
		QuitOnFull:  cfg.Run.QuitOnFull,
		Duplicate:   cfg.Run.Duplicate,
		Seed:        cfg.Run.Seed,
		DropCache:   cfg.Run.DropCache,
		IdleBackoff: idleBackoff,
		ReportPath:  cfg.Run.ReportPath,
		FileMode:    fileMode,
	}, nil
}

// runExercise runs the exerciser against directory until ctx is done
// or a fatal error occurs. The counters line is written to stdout
// before every return.
func runExercise(ctx context.Context, directory string, options runOptions, stdout io.Writer, logger *slog.Logger) error {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Space == nil {
		options.Space = diskspace.System()
	}

	startedAt := options.Clock.Now()
	runSeed := uint64(startedAt.Unix())
	if options.Seed != nil {
		runSeed = *options.Seed
	}

	var policyOptions []sizepolicy.Option
	var fixedSeed *uint64
	if options.Duplicate {
		policyOptions = append(policyOptions, sizepolicy.WithBlockAlignment())
		fixedSeed = &runSeed
	}

	store, err := filestore.New(directory, filestore.Options{
		Space:     options.Space,
		Policy:    sizepolicy.New(runSeed, policyOptions...),
		Clock:     options.Clock,
		FixedSeed: fixedSeed,
		DropCache: options.DropCache,
		FileMode:  options.FileMode,
		Logger:    logger,
	})
	if err != nil {
		printCounters(stdout, exerciser.Counters{})
		return err
	}

	usage, err := options.Space.Usage(directory)
	if err != nil {
		printCounters(stdout, exerciser.Counters{})
		return fmt.Errorf("querying free space: %w", err)
	}
	logger.Info("exercising directory",
		"directory", directory,
		"seed", runSeed,
		"duplicate", options.Duplicate,
		"total", humanize.IBytes(usage.Total),
		"free", humanize.IBytes(usage.Free),
		"reserve", humanize.IBytes(sizepolicy.Reserve(usage.Total)),
	)

	runner := exerciser.New(store, exerciser.Options{
		Logger:      logger,
		Clock:       options.Clock,
		QuitOnFull:  options.QuitOnFull,
		IdleBackoff: options.IdleBackoff,
	})
	counters, runErr := runner.Run(ctx)

	printCounters(stdout, counters)

	if options.ReportPath != "" {
		record := buildReport(directory, runSeed, startedAt, options.Clock.Now(), counters, runner.Tracked(), runErr)
		if err := report.Write(options.ReportPath, record); err != nil {
			logger.Error("writing run report failed", "path", options.ReportPath, "error", err)
			if runErr == nil {
				return err
			}
		} else {
			logger.Info("run report written", "path", options.ReportPath, "outcome", record.Outcome)
		}
	}
	return runErr
}

func printCounters(stdout io.Writer, counters exerciser.Counters) {
	fmt.Fprintf(stdout, "We created %d files with a total of %d bytes!\n",
		counters.FilesCreated, counters.BytesWritten)
}

func buildReport(directory string, runSeed uint64, startedAt, finishedAt time.Time, counters exerciser.Counters, tracked []exerciser.TrackedFile, runErr error) report.Report {
	record := report.Report{
		Version:       version.Short(),
		Directory:     directory,
		RunSeed:       runSeed,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		Outcome:       report.OutcomeStopped,
		FilesCreated:  counters.FilesCreated,
		BytesWritten:  counters.BytesWritten,
		DrainCycles:   counters.DrainCycles,
		FilesVerified: counters.FilesVerified,
		FilesDeleted:  counters.FilesDeleted,
	}
	for _, file := range tracked {
		record.Tracked = append(record.Tracked, report.TrackedFile{Path: file.Path, Size: file.Size})
	}

	var corruption *exerciser.CorruptionError
	switch {
	case runErr == nil:
	case errors.As(runErr, &corruption):
		record.Outcome = report.OutcomeCorruption
		record.FailurePath = corruption.Path
		record.FailureReason = corruption.Err.Error()
	default:
		record.Outcome = report.OutcomeError
		record.FailureReason = runErr.Error()
	}
	return record
}
