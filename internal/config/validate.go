package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run — errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	// Backend URLs must parse and carry the expected scheme
	if u, err := url.Parse(cfg.Backend.BaseURL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Sprintf("backend.base_url %q is not a valid URL", cfg.Backend.BaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("backend.base_url %q must use http or https", cfg.Backend.BaseURL))
	}
	if u, err := url.Parse(cfg.Backend.WSURL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Sprintf("backend.ws_url %q is not a valid URL", cfg.Backend.WSURL))
	} else if u.Scheme != "ws" && u.Scheme != "wss" {
		errs = append(errs, fmt.Sprintf("backend.ws_url %q must use ws or wss", cfg.Backend.WSURL))
	}

	// Log level must be a known value
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q must be one of \"trace\", \"debug\", \"info\", \"warn\", \"error\"", cfg.Logging.Level))
	}

	// Positive value checks
	if cfg.Backend.TimeoutSeconds <= 0 {
		errs = append(errs, "backend.timeout_seconds must be positive")
	}
	if cfg.UI.ScrollSpeed <= 0 {
		errs = append(errs, "ui.scroll_speed must be positive")
	}

	// Boot script integrity: ids unique, durations non-negative
	seen := make(map[string]bool)
	for i, s := range cfg.Init {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("init_steps[%d] is missing an id", i))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("init_steps[%d] duplicates id %q", i, s.ID))
		}
		seen[s.ID] = true
		if s.DurationMs < 0 {
			errs = append(errs, fmt.Sprintf("init_steps[%d] %q has a negative duration", i, s.ID))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
