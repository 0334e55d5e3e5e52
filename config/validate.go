// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"slices"
)

// validation errors.
var (
	errInvalidLogLevel        = errors.New("invalid Log.Level value")
	errInvalidLogFormat       = errors.New("invalid Log.Format value")
	errInvalidDemoPageSize    = errors.New("Demo.PageSize must be positive")
	errInvalidCacheSize       = errors.New("Cache.Size must be positive when the cache is enabled")
	errInvalidLimiterRate     = errors.New("Limiter.RequestsPerSecond and Limiter.Burst must be positive when the limiter is enabled")
)

var (
	knownLogLevels  = []string{"debug", "info", "warn", "error"}
	knownLogFormats = []string{"console", "json"}
)

// validate checks the server configuration after all sources are merged.
//
// A configured unix socket takes precedence over Host and Port in
// chooseListener, so no cross-field check is needed for the listener.
func (cfg *ServerConfig) validate() error {
	if !slices.Contains(knownLogLevels, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if !slices.Contains(knownLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.Demo.PageSize <= 0 {
		return errInvalidDemoPageSize
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if cfg.Limiter.Enabled && (cfg.Limiter.RequestsPerSecond <= 0 || cfg.Limiter.Burst <= 0) {
		return errInvalidLimiterRate
	}

	return nil
}
