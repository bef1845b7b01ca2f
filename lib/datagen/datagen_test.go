// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package datagen

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1700000000, ^uint64(0)} {
		first := Generate(seed, 4096)
		second := Generate(seed, 4096)
		if !bytes.Equal(first, second) {
			t.Errorf("Generate(%d, 4096) not deterministic", seed)
		}
	}
}

func TestGenerateLength(t *testing.T) {
	for _, length := range []int64{0, 1, 511, 512, 65537} {
		got := Generate(7, length)
		if int64(len(got)) != length {
			t.Errorf("len(Generate(7, %d)) = %d", length, len(got))
		}
	}
}

func TestGenerateNegativeLength(t *testing.T) {
	got := Generate(7, -3)
	if got == nil || len(got) != 0 {
		t.Fatalf("Generate(7, -3) = %v, want empty non-nil slice", got)
	}
}

func TestGenerateAlphabet(t *testing.T) {
	data := Generate(99, 32*1024)
	for i, b := range data {
		if !strings.ContainsRune(Alphabet, rune(b)) {
			t.Fatalf("byte %d = %q outside alphabet", i, b)
		}
	}
}

func TestGenerateUsesWholeAlphabet(t *testing.T) {
	// 64 KiB over a 62-symbol alphabet: every symbol appears with
	// overwhelming probability under any reasonable generator.
	seen := make(map[byte]bool)
	for _, b := range Generate(3, 64*1024) {
		seen[b] = true
	}
	if len(seen) != len(Alphabet) {
		t.Errorf("saw %d distinct symbols, want %d", len(seen), len(Alphabet))
	}
}

func TestGeneratePrefixProperty(t *testing.T) {
	long := Generate(12345, 10000)
	short := Generate(12345, 777)
	if !bytes.HasPrefix(long, short) {
		t.Fatal("Generate(s, 777) is not a prefix of Generate(s, 10000)")
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	if bytes.Equal(Generate(1, 1024), Generate(2, 1024)) {
		t.Error("different seeds produced identical content")
	}
}

func TestGenerateInto(t *testing.T) {
	buffer := make([]byte, 2048)
	GenerateInto(5, buffer)
	if !bytes.Equal(buffer, Generate(5, 2048)) {
		t.Error("GenerateInto and Generate disagree")
	}
}

func TestReaderMatchesGenerate(t *testing.T) {
	const length = 100_003
	want := Generate(77, length)

	// Uneven read sizes must not change the stream.
	reader := NewReader(77)
	got := make([]byte, 0, length)
	for _, chunk := range []int{1, 7, 4096, 65536, 0, 31} {
		buffer := make([]byte, chunk)
		n, err := reader.Read(buffer)
		if err != nil || n != chunk {
			t.Fatalf("Read(%d) = %d, %v", chunk, n, err)
		}
		got = append(got, buffer...)
	}
	rest, err := io.ReadAll(io.LimitReader(reader, int64(length-len(got))))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	got = append(got, rest...)

	if !bytes.Equal(got, want) {
		t.Fatal("streamed content differs from Generate")
	}
}
