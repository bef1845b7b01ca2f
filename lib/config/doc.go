// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for integrity.
//
// Configuration comes from at most one file, named by the --config flag
// or the INTEGRITY_CONFIG environment variable (via [Resolve], [Load],
// or [LoadFile]). There is no ~/.config discovery and no search path.
// When neither source is given the built-in [Default] values apply.
// Command-line flags that the user set explicitly override file values;
// that merge happens in the command layer.
//
// ${VAR} and ${VAR:-default} are expanded in run.report_path after
// loading. No other environment variables override config values.
//
// This package depends on no other integrity packages.
package config
