// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tasleson/integrity/lib/artifactname"
	"github.com/tasleson/integrity/lib/clock"
	"github.com/tasleson/integrity/lib/datagen"
	"github.com/tasleson/integrity/lib/digest"
	"github.com/tasleson/integrity/lib/diskspace"
	"github.com/tasleson/integrity/lib/sizepolicy"
)

// DefaultFileMode is the permission used for new artifacts.
const DefaultFileMode os.FileMode = 0o644

// Options configures a Store. Zero values select production defaults.
type Options struct {
	// Space reports volume capacity for policy-sized creates and
	// bounds explicit sizes.
	// Default: diskspace.System().
	Space diskspace.Prober

	// Policy sizes files when a create request carries no size. A nil
	// Policy makes such requests fail.
	Policy *sizepolicy.Policy

	// Clock supplies the time-derived seed. Default: clock.Real().
	Clock clock.Clock

	// FixedSeed, when set, replaces the time-derived seed for requests
	// without an explicit seed. Every file then shares one content
	// stream and differs only in length (duplicate mode).
	FixedSeed *uint64

	// DropCache evicts artifact pages after writes and before
	// verification. No effect outside Linux.
	DropCache bool

	// FileMode is the permission of new artifacts. Default: 0644.
	FileMode os.FileMode

	// Logger receives debug records for each create and delete.
	// Default: slog.Default().
	Logger *slog.Logger
}

// Store manages artifacts in one directory. A Store is not safe for
// concurrent use; the exerciser is its only caller.
type Store struct {
	directory string
	space     diskspace.Prober
	policy    *sizepolicy.Policy
	clock     clock.Clock
	fixedSeed *uint64
	dropCache bool
	fileMode  os.FileMode
	logger    *slog.Logger
}

// New returns a Store for directory, which must exist and be a
// directory.
func New(directory string, options Options) (*Store, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("opening artifact directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", directory)
	}

	store := &Store{
		directory: directory,
		space:     options.Space,
		policy:    options.Policy,
		clock:     options.Clock,
		fixedSeed: options.FixedSeed,
		dropCache: options.DropCache,
		fileMode:  options.FileMode,
		logger:    options.Logger,
	}
	if store.space == nil {
		store.space = diskspace.System()
	}
	if store.clock == nil {
		store.clock = clock.Real()
	}
	if store.fileMode == 0 {
		store.fileMode = DefaultFileMode
	}
	if store.logger == nil {
		store.logger = slog.Default()
	}
	return store, nil
}

// Directory returns the directory the store writes into.
func (s *Store) Directory() string { return s.directory }

// CreateRequest selects the seed and size of a new artifact. A nil
// field is resolved by the store: Size through the size policy, Seed
// from FixedSeed or the current Unix time.
type CreateRequest struct {
	Seed *uint64
	Size *int64
}

// Artifact is a file written by Create.
type Artifact struct {
	Path string
	Size int64
}

// Create writes a new artifact and returns its path and size. Returns
// sizepolicy.ErrNoRoom when the policy refuses, ErrExceedsCapacity when
// an explicit size is larger than the whole volume, ErrNamingExhausted
// when every name candidate is taken, and a wrapped I/O error otherwise.
//
// Content is streamed twice from the generator: once through the hash
// to build the name, then into the claimed file. Memory use does not
// depend on size.
func (s *Store) Create(request CreateRequest) (Artifact, error) {
	size, err := s.resolveSize(request.Size)
	if err != nil {
		return Artifact{}, err
	}
	seed := s.resolveSeed(request.Seed)

	contentHash, _, err := digest.Reader(io.LimitReader(datagen.NewReader(seed), size))
	if err != nil {
		return Artifact{}, fmt.Errorf("hashing generated content: %w", err)
	}
	contract := artifactname.Contract{
		ContentHash:  contentHash,
		Seed:         seed,
		DeclaredSize: size,
	}

	var file *os.File
	path, err := artifactname.Resolve(s.directory, contract, func(candidate string) (bool, error) {
		opened, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.fileMode)
		if errors.Is(err, fs.ErrExist) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		file = opened
		return false, nil
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("naming artifact: %w", err)
	}

	if err := s.writeDurably(file, path, datagen.NewReader(seed), size); err != nil {
		os.Remove(path)
		return Artifact{}, err
	}
	if err := syncDirectory(s.directory); err != nil {
		os.Remove(path)
		return Artifact{}, err
	}

	s.logger.Debug("artifact created",
		"path", path,
		"size", size,
		"seed", seed,
	)
	return Artifact{Path: path, Size: size}, nil
}

func (s *Store) resolveSize(requested *int64) (int64, error) {
	if requested != nil {
		return s.checkExplicitSize(*requested)
	}
	if s.policy == nil {
		return 0, errors.New("no size requested and no size policy configured")
	}
	usage, err := s.space.Usage(s.directory)
	if err != nil {
		return 0, fmt.Errorf("querying free space: %w", err)
	}
	return s.policy.NextFileSize(usage.Total, usage.Free)
}

// checkExplicitSize validates a caller-chosen size. Free space is not
// consulted, only the volume's total capacity: a file larger than the
// volume can never be written. When capacity cannot be probed the size
// is attempted anyway.
func (s *Store) checkExplicitSize(size int64) (int64, error) {
	if size < 0 {
		return 0, fmt.Errorf("artifact size must be non-negative, got %d", size)
	}
	usage, err := s.space.Usage(s.directory)
	if err != nil {
		s.logger.Debug("capacity unknown, attempting requested size", "size", size, "error", err)
		return size, nil
	}
	if uint64(size) > usage.Total {
		return 0, fmt.Errorf("%w: %d bytes requested, volume holds %d", ErrExceedsCapacity, size, usage.Total)
	}
	return size, nil
}

func (s *Store) resolveSeed(requested *uint64) uint64 {
	switch {
	case requested != nil:
		return *requested
	case s.fixedSeed != nil:
		return *s.fixedSeed
	default:
		return uint64(s.clock.Now().Unix())
	}
}

// writeDurably copies size bytes of content into file, fsyncs it, and
// closes it. The file is closed on every path.
func (s *Store) writeDurably(file *os.File, path string, content io.Reader, size int64) error {
	if _, err := io.CopyN(file, content, size); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if s.dropCache {
		if err := dropPageCache(file); err != nil {
			s.logger.Warn("dropping page cache failed", "path", path, "error", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Verify checks path against the contract in its name. With DropCache
// set, the file's cached pages are evicted first.
func (s *Store) Verify(path string) error {
	if s.dropCache {
		if err := dropPageCacheAt(path); err != nil {
			s.logger.Warn("dropping page cache failed", "path", path, "error", err)
		}
	}
	return Verify(path)
}

// Delete removes an artifact and syncs its directory. Callers treat a
// failure as fatal: a run cannot reason about a volume it cannot
// modify.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	if err := syncDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	s.logger.Debug("artifact deleted", "path", path)
	return nil
}

// Verify checks the artifact at path against the contract encoded in
// its file name: name structure and self-check hash, then byte length,
// then content digest. Returns nil only if every check passes.
func Verify(path string) error {
	decoded, err := artifactname.Parse(filepath.Base(path))
	if err != nil {
		return &VerifyError{Path: path, Reason: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.Size() != decoded.DeclaredSize {
		return &VerifyError{
			Path:     path,
			Reason:   ErrSizeMismatch,
			Expected: strconv.FormatInt(decoded.DeclaredSize, 10),
			Actual:   strconv.FormatInt(info.Size(), 10),
		}
	}

	calculated, err := digest.File(path)
	if err != nil {
		return err
	}
	if calculated != decoded.ContentHash {
		return &VerifyError{
			Path:     path,
			Reason:   ErrContentMismatch,
			Expected: decoded.ContentHash,
			Actual:   calculated,
		}
	}
	return nil
}

// syncDirectory fsyncs a directory so entries created or removed in it
// are durable.
func syncDirectory(directory string) error {
	handle, err := os.Open(directory)
	if err != nil {
		return fmt.Errorf("opening %s for sync: %w", directory, err)
	}
	defer handle.Close()
	if err := handle.Sync(); err != nil {
		return fmt.Errorf("syncing directory %s: %w", directory, err)
	}
	return nil
}
