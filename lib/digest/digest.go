// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes. The hex form is twice as long.
const Size = 32

// HexLength is the length of a formatted digest.
const HexLength = 2 * Size

// Bytes returns the hex digest of data.
func Bytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// String returns the hex digest of the UTF-8 bytes of s.
func String(s string) string {
	return Bytes([]byte(s))
}

// Reader streams r through the hash and returns the hex digest along
// with the number of bytes read.
func Reader(r io.Reader) (string, int64, error) {
	hasher := blake3.New()
	count, err := io.Copy(hasher, r)
	if err != nil {
		return "", count, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), count, nil
}

// File computes the hex digest of the file at path. The file is
// streamed through the hash in chunks (via io.Copy) to keep memory
// usage constant regardless of file size.
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	sum, _, err := Reader(file)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return sum, nil
}

// Parse decodes a hex digest. Returns an error if the string is not a
// valid 64-character hex encoding of 32 bytes.
func Parse(hexString string) ([Size]byte, error) {
	var sum [Size]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return sum, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return sum, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(sum[:], decoded)
	return sum, nil
}

// Valid reports whether hexString is a well-formed digest.
func Valid(hexString string) bool {
	_, err := Parse(hexString)
	return err == nil
}
