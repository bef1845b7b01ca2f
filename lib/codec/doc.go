// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration shared by every on-disk
// record integrity writes.
//
// JSON is used for anything a person reads (CLI --json output). CBOR
// is used for files the tool writes for itself, currently the run
// report. The encoder uses Core Deterministic Encoding: sorted map
// keys, smallest integer encoding, no indefinite-length items.
//
// Types serialized only as CBOR carry `cbor` struct tags. Types that
// are also printed as JSON carry `json` tags only; fxamacker/cbor reads
// `json` tags when `cbor` tags are absent. Never put both on one field.
package codec
