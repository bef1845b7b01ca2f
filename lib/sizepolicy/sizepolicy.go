// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package sizepolicy

import (
	"errors"
	"math/rand/v2"
)

const (
	// ReserveFraction is the share of total capacity that is never
	// filled. It is a fixed floor, not a tunable.
	ReserveFraction = 0.5

	// MinFileSize is the smallest size drawn for a new file.
	MinFileSize = 512

	// MaxFileSize is the exclusive upper bound of the size draw.
	MaxFileSize = 8 * 1024 * 1024

	// BlockSize is the alignment applied in block-aligned mode.
	BlockSize = 512
)

// ErrNoRoom is returned when free space is at or below the reserve.
var ErrNoRoom = errors.New("no room: free space at or below reserve")

// Option configures a Policy.
type Option func(*Policy)

// WithBlockAlignment rounds every size down to a multiple of
// BlockSize, which makes identical prefixes line up on block boundaries
// for deduplicating storage. Sizes smaller than one block are left
// unrounded.
func WithBlockAlignment() Option {
	return func(p *Policy) { p.blockAligned = true }
}

// Policy draws file sizes. A Policy is not safe for concurrent use; the
// exerciser owns exactly one.
type Policy struct {
	random       *rand.Rand
	blockAligned bool
}

// New returns a Policy whose size draws are seeded by seed.
func New(seed uint64, options ...Option) *Policy {
	policy := &Policy{
		random: rand.New(rand.NewPCG(seed, seed^0x73697a65)), // "size"
	}
	for _, option := range options {
		option(policy)
	}
	return policy
}

// Reserve returns the number of bytes of total that must stay free.
func Reserve(total uint64) uint64 {
	return uint64(float64(total) * ReserveFraction)
}

// NextFileSize returns the size of the next file given the volume's
// total and free bytes, or ErrNoRoom. The returned size never exceeds
// free - Reserve(total).
func (p *Policy) NextFileSize(total, free uint64) (int64, error) {
	reserve := Reserve(total)
	if free <= reserve {
		return 0, ErrNoRoom
	}
	headroom := free - reserve

	candidate := uint64(MinFileSize) + p.random.Uint64N(MaxFileSize-MinFileSize)
	size := min(headroom, candidate)

	if p.blockAligned && size >= BlockSize {
		size -= size % BlockSize
	}
	return int64(size), nil
}
