// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package sizepolicy

import (
	"errors"
	"math/rand/v2"
	"testing"
)

const (
	mebibyte = 1024 * 1024
	gibibyte = 1024 * mebibyte
)

func TestNextFileSizeRange(t *testing.T) {
	policy := New(1)
	for i := 0; i < 10000; i++ {
		size, err := policy.NextFileSize(gibibyte, 900*mebibyte)
		if err != nil {
			t.Fatalf("NextFileSize: %v", err)
		}
		if size < MinFileSize || size >= MaxFileSize {
			t.Fatalf("size %d outside [%d, %d)", size, MinFileSize, MaxFileSize)
		}
	}
}

func TestNextFileSizeNoRoom(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		free  uint64
	}{
		{"below reserve", gibibyte, 500 * mebibyte},
		{"exactly reserve", gibibyte, 512 * mebibyte},
		{"empty volume", 0, 0},
		{"full volume", gibibyte, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(1).NextFileSize(test.total, test.free)
			if !errors.Is(err, ErrNoRoom) {
				t.Fatalf("NextFileSize(%d, %d) error = %v, want ErrNoRoom", test.total, test.free, err)
			}
		})
	}
}

func TestNextFileSizeClampsToHeadroom(t *testing.T) {
	policy := New(2)
	total := uint64(gibibyte)
	free := Reserve(total) + 100
	for i := 0; i < 100; i++ {
		size, err := policy.NextFileSize(total, free)
		if err != nil {
			t.Fatalf("NextFileSize: %v", err)
		}
		if size != 100 {
			t.Fatalf("size = %d, want headroom 100", size)
		}
	}
}

func TestNextFileSizeNeverCrossesReserve(t *testing.T) {
	source := rand.New(rand.NewPCG(9, 9))
	policy := New(3)
	for i := 0; i < 20000; i++ {
		total := source.Uint64N(64 * gibibyte)
		free := uint64(0)
		if total > 0 {
			free = source.Uint64N(total + 1)
		}
		size, err := policy.NextFileSize(total, free)
		if errors.Is(err, ErrNoRoom) {
			if free > Reserve(total) {
				t.Fatalf("ErrNoRoom with free %d above reserve %d", free, Reserve(total))
			}
			continue
		}
		if err != nil {
			t.Fatalf("NextFileSize: %v", err)
		}
		if size <= 0 {
			t.Fatalf("non-positive size %d for total %d free %d", size, total, free)
		}
		if free-uint64(size) < Reserve(total) {
			t.Fatalf("size %d drives free %d below reserve %d", size, free, Reserve(total))
		}
	}
}

func TestNextFileSizeSeedReproducible(t *testing.T) {
	first := New(42)
	second := New(42)
	for i := 0; i < 100; i++ {
		a, _ := first.NextFileSize(gibibyte, 900*mebibyte)
		b, _ := second.NextFileSize(gibibyte, 900*mebibyte)
		if a != b {
			t.Fatalf("draw %d differs: %d != %d", i, a, b)
		}
	}
}

func TestBlockAlignment(t *testing.T) {
	policy := New(4, WithBlockAlignment())
	for i := 0; i < 1000; i++ {
		size, err := policy.NextFileSize(gibibyte, 900*mebibyte)
		if err != nil {
			t.Fatalf("NextFileSize: %v", err)
		}
		if size%BlockSize != 0 {
			t.Fatalf("size %d not a multiple of %d", size, BlockSize)
		}
	}

	total := uint64(gibibyte)
	size, err := policy.NextFileSize(total, Reserve(total)+300)
	if err != nil {
		t.Fatalf("NextFileSize: %v", err)
	}
	if size != 300 {
		t.Errorf("sub-block headroom size = %d, want 300 (unrounded)", size)
	}
}

func TestReserve(t *testing.T) {
	if got := Reserve(gibibyte); got != 512*mebibyte {
		t.Errorf("Reserve(1GiB) = %d, want %d", got, 512*mebibyte)
	}
}
