// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the integrity binary.
//
// A [Command] tree is dispatched by the first positional argument.
// Leaf commands parse their flags with pflag, typically generated from
// a tagged parameter struct by [FlagsFromParams], then call Run with
// the remaining positional arguments. Unknown commands and flags get an
// edit-distance suggestion.
//
// Commands that reach a non-zero outcome they have already reported
// return [*ExitError]; main exits with its code without printing
// anything further. Any other error is printed as "error: ..." with
// exit status 1.
//
// [NewLogger] builds the slog logger every command shares: text on a
// terminal, JSON when stderr is redirected.
package cli
