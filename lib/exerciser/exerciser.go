// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package exerciser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tasleson/integrity/lib/clock"
	"github.com/tasleson/integrity/lib/filestore"
	"github.com/tasleson/integrity/lib/sizepolicy"
)

// DefaultIdleBackoff is how long the loop pauses after a drain pass
// that had nothing to delete.
const DefaultIdleBackoff = time.Second

// Store is the artifact store the exerciser drives. *filestore.Store
// satisfies it.
type Store interface {
	Create(request filestore.CreateRequest) (filestore.Artifact, error)
	Verify(path string) error
	Delete(path string) error
}

// Options configures an Exerciser.
type Options struct {
	// Logger receives transition and drain records. Default:
	// slog.Default().
	Logger *slog.Logger

	// Clock times the idle backoff. Default: clock.Real().
	Clock clock.Clock

	// QuitOnFull stops the run after the first drain pass verifies
	// every tracked artifact, without pruning anything.
	QuitOnFull bool

	// IdleBackoff is the pause after a drain pass that deleted
	// nothing. Zero selects DefaultIdleBackoff.
	IdleBackoff time.Duration

	// Observer, if set, is called synchronously on every transition.
	Observer func(Event)
}

// Counters accumulate over one run.
type Counters struct {
	FilesCreated  int64
	BytesWritten  int64
	DrainCycles   int64
	FilesVerified int64
	FilesDeleted  int64
}

// TrackedFile is an artifact the exerciser created and still owns.
type TrackedFile struct {
	Path string
	Size int64
}

// CorruptionError reports a tracked artifact that failed verification
// with a contract violation.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("corruption detected in %s: %v", e.Path, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// Exerciser runs the fill/drain loop against one store.
type Exerciser struct {
	store       Store
	logger      *slog.Logger
	clock       clock.Clock
	quitOnFull  bool
	idleBackoff time.Duration
	observer    func(Event)

	state    State
	tracked  []TrackedFile
	counters Counters
}

// New returns an Exerciser in the Filling state.
func New(store Store, options Options) *Exerciser {
	exerciser := &Exerciser{
		store:       store,
		logger:      options.Logger,
		clock:       options.Clock,
		quitOnFull:  options.QuitOnFull,
		idleBackoff: options.IdleBackoff,
		observer:    options.Observer,
		state:       Filling,
	}
	if exerciser.logger == nil {
		exerciser.logger = slog.Default()
	}
	if exerciser.clock == nil {
		exerciser.clock = clock.Real()
	}
	if exerciser.idleBackoff <= 0 {
		exerciser.idleBackoff = DefaultIdleBackoff
	}
	return exerciser
}

// State returns the current phase.
func (e *Exerciser) State() State { return e.state }

// Tracked returns a copy of the tracked list in creation order.
func (e *Exerciser) Tracked() []TrackedFile { return slices.Clone(e.tracked) }

// Run executes the loop until ctx is cancelled, QuitOnFull ends it, or
// a fatal error occurs. A clean stop returns a nil error. Corruption is
// returned as *CorruptionError. The counters are valid in every case.
func (e *Exerciser) Run(ctx context.Context) (Counters, error) {
	e.logger.Info("exerciser starting", "state", e.state, "quit_on_full", e.quitOnFull)

	for {
		if ctx.Err() != nil {
			e.transition(Stopped)
		}

		var err error
		switch e.state {
		case Filling:
			err = e.fill()
		case Draining:
			err = e.drain(ctx)
		case Stopped:
			e.logger.Info("exerciser stopped", e.counterAttrs()...)
			return e.counters, nil
		}
		if err != nil {
			e.logger.Error("exerciser failed",
				append([]any{"state", e.state, "error", err}, e.counterAttrs()...)...)
			return e.counters, err
		}
	}
}

func (e *Exerciser) fill() error {
	artifact, err := e.store.Create(filestore.CreateRequest{})
	if errors.Is(err, sizepolicy.ErrNoRoom) {
		e.transition(Draining)
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating artifact: %w", err)
	}
	e.tracked = append(e.tracked, TrackedFile{Path: artifact.Path, Size: artifact.Size})
	e.counters.FilesCreated++
	e.counters.BytesWritten += artifact.Size
	return nil
}

func (e *Exerciser) drain(ctx context.Context) error {
	for _, file := range e.tracked {
		if err := e.store.Verify(file.Path); err != nil {
			if filestore.IsContractViolation(err) {
				return &CorruptionError{Path: file.Path, Err: err}
			}
			return fmt.Errorf("verifying %s: %w", file.Path, err)
		}
		e.counters.FilesVerified++
	}
	e.counters.DrainCycles++

	if e.quitOnFull {
		e.logger.Info("volume full, all artifacts verified", "tracked", len(e.tracked))
		e.transition(Stopped)
		return nil
	}

	before := len(e.tracked)
	remaining, err := PruneEvenIndices(e.tracked, func(file TrackedFile) error {
		if err := e.store.Delete(file.Path); err != nil {
			return err
		}
		e.counters.FilesDeleted++
		return nil
	})
	e.tracked = remaining
	if err != nil {
		return fmt.Errorf("pruning artifacts: %w", err)
	}
	deleted := before - len(remaining)

	e.logger.Info("drain cycle complete",
		"cycle", e.counters.DrainCycles,
		"verified", before,
		"deleted", deleted,
		"retained", len(remaining),
	)
	e.transition(Filling)

	if deleted == 0 {
		// Nothing of ours to free; the volume is held by other data.
		select {
		case <-e.clock.After(e.idleBackoff):
		case <-ctx.Done():
		}
	}
	return nil
}

func (e *Exerciser) transition(to State) {
	if e.state == to {
		return
	}
	from := e.state
	e.state = to
	e.logger.Debug("state transition", "from", from, "to", to)
	if e.observer != nil {
		e.observer(Event{From: from, To: to, Counters: e.counters})
	}
}

func (e *Exerciser) counterAttrs() []any {
	return []any{
		"files_created", e.counters.FilesCreated,
		"bytes_written", humanize.IBytes(uint64(e.counters.BytesWritten)),
		"drain_cycles", e.counters.DrainCycles,
		"files_verified", e.counters.FilesVerified,
		"files_deleted", e.counters.FilesDeleted,
	}
}
