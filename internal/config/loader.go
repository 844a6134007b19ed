package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mitosis-ai/mitosis/internal/monitor"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the root for file
// discovery. This is the testable entry point — Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./mitosis.yaml (relative to the working directory)
	local := filepath.Join(dir, "mitosis.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/mitosis/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "mitosis", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when non-zero.
// Slices replace entirely when non-nil. Pointer-to-bool fields override when
// non-nil.
func merge(base *Config, override *Config) {
	// Backend
	if override.Backend.BaseURL != "" {
		base.Backend.BaseURL = override.Backend.BaseURL
	}
	if override.Backend.WSURL != "" {
		base.Backend.WSURL = override.Backend.WSURL
	}
	if override.Backend.TimeoutSeconds != 0 {
		base.Backend.TimeoutSeconds = override.Backend.TimeoutSeconds
	}

	// Memory / Reports
	if override.Memory.Path != "" {
		base.Memory.Path = override.Memory.Path
	}
	if override.Reports.Dir != "" {
		base.Reports.Dir = override.Reports.Dir
	}

	// UI — *bool overrides when non-nil
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.ScrollSpeed != 0 {
		base.UI.ScrollSpeed = override.UI.ScrollSpeed
	}
	if override.UI.ShowPageMeta != nil {
		base.UI.ShowPageMeta = override.UI.ShowPageMeta
	}

	// Logging
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	// Init script replaces entirely when present
	if override.Init != nil {
		base.Init = override.Init
	}
}

// applyEnvOverrides applies MITOSIS_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MITOSIS_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("MITOSIS_WS_URL"); v != "" {
		cfg.Backend.WSURL = v
	}
	if v := os.Getenv("MITOSIS_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: MITOSIS_TIMEOUT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("MITOSIS_MEMORY_PATH"); v != "" {
		cfg.Memory.Path = v
	}
	if v := os.Getenv("MITOSIS_REPORTS_DIR"); v != "" {
		cfg.Reports.Dir = v
	}
	if v := os.Getenv("MITOSIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MITOSIS_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

// InitSteps converts the configured boot script to sequencer steps.
func (c *Config) InitSteps() []monitor.InitStep {
	steps := make([]monitor.InitStep, 0, len(c.Init))
	for _, s := range c.Init {
		steps = append(steps, monitor.InitStep{
			ID:       s.ID,
			Title:    s.Title,
			Duration: time.Duration(s.DurationMs) * time.Millisecond,
		})
	}
	return steps
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
