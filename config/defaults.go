// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default simulated fetch latency in milliseconds, mirroring the slow
	// backing store the demo grid reads from.
	defaultDemoFetchDelayMs = 500
	// Default simulated count latency in milliseconds.
	defaultDemoCountDelayMs = 250
	// Default simulated data load latency in milliseconds.
	defaultDemoLoadDelayMs = 250
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8482"

	cfg.Development.InDevelopment = true

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Demo.FetchDelay = defaultDemoFetchDelayMs * time.Millisecond
	cfg.Demo.CountDelay = defaultDemoCountDelayMs * time.Millisecond
	cfg.Demo.LoadDelay = defaultDemoLoadDelayMs * time.Millisecond
	cfg.Demo.PageSize = 10

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 32
	cfg.Cache.Compress = true

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerSecond = 10
	cfg.Limiter.Burst = 20
}
