// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "INTEGRITY_CONFIG"

// Config is the complete integrity configuration.
type Config struct {
	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`

	// Run configures the exercise loop.
	Run RunConfig `yaml:"run"`

	// Files configures artifact creation.
	Files FilesConfig `yaml:"files"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Format is "auto", "text", or "json". auto picks text when
	// stderr is a terminal.
	// Default: auto
	Format string `yaml:"format"`

	// Level is "debug", "info", "warn", or "error".
	// Default: info
	Level string `yaml:"level"`
}

// RunConfig configures the exercise loop.
type RunConfig struct {
	// QuitOnFull stops after the first full verification pass instead
	// of pruning and refilling.
	QuitOnFull bool `yaml:"quit_on_full"`

	// Duplicate makes every artifact share the run seed, so files
	// differ only in length. Sizes are block aligned in this mode.
	Duplicate bool `yaml:"duplicate"`

	// Seed pins the run seed. Unset means the current Unix time.
	Seed *uint64 `yaml:"seed,omitempty"`

	// DropCache evicts artifact pages after writing and before
	// verifying (Linux only).
	DropCache bool `yaml:"drop_cache"`

	// IdleBackoff is the pause after a drain pass with nothing to
	// delete, as a Go duration string.
	// Default: 1s
	IdleBackoff string `yaml:"idle_backoff"`

	// ReportPath, if set, is where the run report is written at exit.
	// ${VAR} and ${VAR:-default} are expanded.
	ReportPath string `yaml:"report_path"`
}

// FilesConfig configures artifact creation.
type FilesConfig struct {
	// Mode is the octal permission of new artifacts.
	// Default: 0644
	Mode string `yaml:"mode"`
}

// Default returns the built-in configuration. A config file is merged
// over these values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Format: "auto",
			Level:  "info",
		},
		Run: RunConfig{
			IdleBackoff: "1s",
		},
		Files: FilesConfig{
			Mode: "0644",
		},
	}
}

// Load loads configuration from the file named by INTEGRITY_CONFIG.
// Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your integrity.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merged over [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// Resolve picks the configuration source for a command: the --config
// path when given, else INTEGRITY_CONFIG when set, else [Default].
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	return Default(), nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Run.ReportPath = expandVars(c.Run.ReportPath, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logFormats = []string{"auto", "text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// Validate checks the configuration for errors. Every problem is
// reported, joined.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if _, err := c.IdleBackoff(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.FileMode(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// IdleBackoff parses run.idle_backoff.
func (c *Config) IdleBackoff() (time.Duration, error) {
	backoff, err := time.ParseDuration(c.Run.IdleBackoff)
	if err != nil {
		return 0, fmt.Errorf("run.idle_backoff: %w", err)
	}
	if backoff <= 0 {
		return 0, fmt.Errorf("run.idle_backoff must be positive, got %s", c.Run.IdleBackoff)
	}
	return backoff, nil
}

// FileMode parses files.mode as an octal permission.
func (c *Config) FileMode() (os.FileMode, error) {
	mode, err := strconv.ParseUint(c.Files.Mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("files.mode %q is not an octal permission", c.Files.Mode)
	}
	if mode == 0 || mode > 0o777 {
		return 0, fmt.Errorf("files.mode %q must be between 0001 and 0777", c.Files.Mode)
	}
	return os.FileMode(mode), nil
}

// LogLevel returns log.level as a slog level. Unknown values map to
// info; Validate rejects them first.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
