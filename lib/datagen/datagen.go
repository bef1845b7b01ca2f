// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package datagen

import "math/rand/v2"

// Alphabet is the set of bytes generated content is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// streamSelector is the fixed PCG increment paired with every seed.
// Changing it changes the content of every artifact ever written, which
// would make existing files impossible to recreate from their names.
const streamSelector = 0x696e746567726974 // "integrit"

// Generate returns length bytes of deterministic content for seed. A
// non-positive length yields an empty slice. Large artifacts should be
// streamed through a Reader instead.
func Generate(seed uint64, length int64) []byte {
	if length <= 0 {
		return []byte{}
	}
	buffer := make([]byte, length)
	GenerateInto(seed, buffer)
	return buffer
}

// GenerateInto fills buffer with the first len(buffer) bytes of the
// content stream for seed.
func GenerateInto(seed uint64, buffer []byte) {
	NewReader(seed).fill(buffer)
}

// Reader is the endless content stream for one seed. Successive reads
// continue where the previous one stopped, so the bytes read are
// identical to Generate(seed, n) however the reads are split. Bound it
// with io.LimitReader or io.CopyN.
type Reader struct {
	source *rand.Rand
}

// NewReader returns the content stream for seed, positioned at its
// first byte.
func NewReader(seed uint64) *Reader {
	return &Reader{source: rand.New(rand.NewPCG(seed, streamSelector))}
}

// Read fills p completely. It never returns an error.
func (r *Reader) Read(p []byte) (int, error) {
	r.fill(p)
	return len(p), nil
}

func (r *Reader) fill(buffer []byte) {
	alphabetSize := uint(len(Alphabet))
	for i := range buffer {
		buffer[i] = Alphabet[r.source.UintN(alphabetSize)]
	}
}
