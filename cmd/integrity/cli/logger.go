// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger for a command, writing to
// stderr. format is "auto", "text", or "json": auto uses
// slog.TextHandler when stderr is a terminal and slog.JSONHandler when
// it is piped or redirected, so captured runs stay machine-parseable.
func NewLogger(format string, level slog.Level) (*slog.Logger, error) {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), format, level)
}

func newLogger(w io.Writer, terminal bool, format string, level slog.Level) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "auto", "":
		if terminal {
			return slog.New(slog.NewTextHandler(w, options)), nil
		}
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want auto, text, or json)", format)
	}
}
