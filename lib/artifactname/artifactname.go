// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package artifactname

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tasleson/integrity/lib/digest"
)

// Marker is the literal tag ending every artifact name.
const Marker = "integrity"

// MaxCollisionSuffixes bounds the .<n> disambiguation counter. A
// directory holding the bare name plus all of .0 through .49 for one
// contract cannot accept another copy.
const MaxCollisionSuffixes = 50

// NoSuffix is the Decoded.Suffix value for a name without a collision
// counter.
const NoSuffix = -1

const (
	fieldSeparator  = ":"
	baseSeparator   = "-"
	suffixSeparator = "."
)

var (
	// ErrMalformedName is returned when a name does not have the
	// structure of an artifact name.
	ErrMalformedName = errors.New("malformed artifact name")

	// ErrMetadataCorrupt is returned when the stored base hash does not
	// match the digest of the base fields.
	ErrMetadataCorrupt = errors.New("artifact name metadata corrupt")

	// ErrNamingExhausted is returned when the bare name and every
	// collision suffix are already in use.
	ErrNamingExhausted = errors.New("artifact naming exhausted")
)

// Contract is the payload carried by an artifact name.
type Contract struct {
	// ContentHash is the digest of the file's bytes.
	ContentHash string

	// Seed is the generator seed the bytes were produced from.
	Seed uint64

	// DeclaredSize is the byte length at creation time.
	DeclaredSize int64
}

// Base returns content_hash-seed-declared_size.
func (c Contract) Base() string {
	return c.ContentHash + baseSeparator +
		strconv.FormatUint(c.Seed, 10) + baseSeparator +
		strconv.FormatInt(c.DeclaredSize, 10)
}

// BaseHash returns the digest protecting the base fields.
func (c Contract) BaseHash() string {
	return digest.String(c.Base())
}

// Name returns the file name without a collision suffix.
func (c Contract) Name() string {
	return c.Base() + fieldSeparator + c.BaseHash() + fieldSeparator + Marker
}

// NameWithSuffix returns the file name carrying collision counter n.
// NoSuffix returns the bare name.
func (c Contract) NameWithSuffix(n int) string {
	if n == NoSuffix {
		return c.Name()
	}
	return c.Name() + suffixSeparator + strconv.Itoa(n)
}

// Candidates returns every name a contract may be stored under, in the
// order they are tried: the bare name, then .0 through .49.
func Candidates(c Contract) []string {
	names := make([]string, 0, MaxCollisionSuffixes+1)
	names = append(names, c.Name())
	for n := 0; n < MaxCollisionSuffixes; n++ {
		names = append(names, c.NameWithSuffix(n))
	}
	return names
}

// Resolve returns the first candidate path in directory for which taken
// reports false. taken may claim the path as a side effect (for example
// by creating it with O_EXCL), which makes the check-and-claim atomic.
// An error from taken aborts the search. Returns ErrNamingExhausted
// when every candidate is in use.
func Resolve(directory string, c Contract, taken func(path string) (bool, error)) (string, error) {
	for _, name := range Candidates(c) {
		path := filepath.Join(directory, name)
		inUse, err := taken(path)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if !inUse {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s and %d suffixes in use", ErrNamingExhausted, c.Name(), MaxCollisionSuffixes)
}

// Decoded is the result of parsing an artifact name.
type Decoded struct {
	Contract

	// StoredBaseHash is the base hash recorded in the name.
	StoredBaseHash string

	// Suffix is the collision counter, or NoSuffix.
	Suffix int
}

// Parse decodes a file name (not a path; callers pass filepath.Base).
func Parse(fileName string) (Decoded, error) {
	parts := strings.Split(fileName, fieldSeparator)
	if len(parts) != 3 {
		return Decoded{}, fmt.Errorf("%w: %q has %d %q-separated fields, want 3",
			ErrMalformedName, fileName, len(parts), fieldSeparator)
	}
	base, storedBaseHash, extension := parts[0], parts[1], parts[2]

	suffix, err := parseExtension(extension)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %q: %v", ErrMalformedName, fileName, err)
	}

	calculated := digest.String(base)
	if storedBaseHash != calculated {
		return Decoded{}, fmt.Errorf("%w: %q (stored = %s, calculated = %s)",
			ErrMetadataCorrupt, fileName, storedBaseHash, calculated)
	}

	fields := strings.Split(base, baseSeparator)
	if len(fields) != 3 {
		return Decoded{}, fmt.Errorf("%w: base %q has %d %q-separated fields, want 3",
			ErrMalformedName, base, len(fields), baseSeparator)
	}

	seed, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: seed %q: %v", ErrMalformedName, fields[1], err)
	}
	declaredSize, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || declaredSize < 0 {
		return Decoded{}, fmt.Errorf("%w: declared size %q is not a non-negative integer",
			ErrMalformedName, fields[2])
	}

	return Decoded{
		Contract: Contract{
			ContentHash:  fields[0],
			Seed:         seed,
			DeclaredSize: declaredSize,
		},
		StoredBaseHash: storedBaseHash,
		Suffix:         suffix,
	}, nil
}

// parseExtension validates the marker field and returns the collision
// suffix it carries. Only the marker prefix is mandatory; text after it
// that is not a .<n> counter is tolerated and reported as NoSuffix.
func parseExtension(extension string) (int, error) {
	rest, ok := strings.CutPrefix(extension, Marker)
	if !ok {
		return 0, fmt.Errorf("extension %q does not start with %q", extension, Marker)
	}
	counter, ok := strings.CutPrefix(rest, suffixSeparator)
	if !ok {
		return NoSuffix, nil
	}
	n, err := strconv.Atoi(counter)
	if err != nil || n < 0 {
		return NoSuffix, nil
	}
	return n, nil
}
