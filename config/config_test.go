// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	var cfg ServerConfig

	cfg.SetDefaults()

	assert.Equal(t, "localhost", cfg.Basic.Host)
	assert.Equal(t, "8482", cfg.Basic.Port)
	assert.True(t, cfg.Development.InDevelopment)
	assert.Equal(t, 500*time.Millisecond, cfg.Demo.FetchDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Demo.CountDelay)
	assert.NoError(t, cfg.validate())
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	yamlContent := `
basic:
  port: "9000"
development:
  inDevelopment: false
demo:
  fetchDelay: 25ms
  pageSize: 5
limiter:
  enabled: true
  requestsPerSecond: 3
  burst: 6
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	var cfg ServerConfig

	cfg.SetDefaults()
	require.NoError(t, cfg.readYAML(path))

	assert.Equal(t, "9000", cfg.Basic.Port)
	assert.False(t, cfg.Development.InDevelopment)
	assert.Equal(t, 25*time.Millisecond, cfg.Demo.FetchDelay)
	assert.Equal(t, 5, cfg.Demo.PageSize)
	assert.True(t, cfg.Limiter.Enabled)
	assert.NoError(t, cfg.validate())

	// Untouched fields keep their defaults.
	assert.Equal(t, "localhost", cfg.Basic.Host)
}

func TestReadYAML_MissingFile(t *testing.T) {
	t.Parallel()

	var cfg ServerConfig

	cfg.SetDefaults()

	// A missing file is not an error; the defaults stand.
	require.NoError(t, cfg.readYAML(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Equal(t, "8482", cfg.Basic.Port)
}

func TestReadEnv(t *testing.T) {
	t.Setenv("STOPCLOCK_PORT", "9999")
	t.Setenv("STOPCLOCK_DEV", "false")
	t.Setenv("STOPCLOCK_DEMO_FETCH_DELAY", "10ms")
	t.Setenv("STOPCLOCK_LOG_OUTPUTS", "/dev/stdout, /tmp/stopclock.log")

	var cfg ServerConfig

	cfg.SetDefaults()
	require.NoError(t, readEnv(&cfg))

	assert.Equal(t, "9999", cfg.Basic.Port)
	assert.False(t, cfg.Development.InDevelopment)
	assert.Equal(t, 10*time.Millisecond, cfg.Demo.FetchDelay)
	assert.Equal(t, []string{"/dev/stdout", "/tmp/stopclock.log"}, cfg.Log.Outputs)
}

func TestReadEnv_OverwriteSemantics(t *testing.T) {
	type spec struct {
		Filled    string `env:"STOPCLOCK_TEST_FILLED"`
		Forced    string `env:"STOPCLOCK_TEST_FORCED,overwrite"`
		DevSwitch bool   `env:"STOPCLOCK_DEV,overwrite"`
	}

	t.Setenv("STOPCLOCK_TEST_FILLED", "from-env")
	t.Setenv("STOPCLOCK_TEST_FORCED", "from-env")
	t.Setenv("STOPCLOCK_DEV", "false")

	cfg := spec{Filled: "from-yaml", Forced: "from-yaml", DevSwitch: true}

	require.NoError(t, readEnv(&cfg))

	// Without the overwrite option a variable only fills zero fields.
	assert.Equal(t, "from-yaml", cfg.Filled)
	assert.Equal(t, "from-env", cfg.Forced)

	// The development switch carries overwrite so an env-configured
	// deployment can force it off over the enabled default.
	assert.False(t, cfg.DevSwitch)
}

func TestReadEnv_BadValue(t *testing.T) {
	t.Setenv("STOPCLOCK_DEMO_PAGE_SIZE", "lots")

	var cfg ServerConfig

	cfg.SetDefaults()
	require.Error(t, readEnv(&cfg))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(cfg *ServerConfig)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*ServerConfig) {},
			wantErr: nil,
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *ServerConfig) { cfg.Log.Level = "loud" },
			wantErr: errInvalidLogLevel,
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *ServerConfig) { cfg.Log.Format = "xml" },
			wantErr: errInvalidLogFormat,
		},
		{
			name:    "non-positive page size",
			mutate:  func(cfg *ServerConfig) { cfg.Demo.PageSize = 0 },
			wantErr: errInvalidDemoPageSize,
		},
		{
			name: "cache enabled without size",
			mutate: func(cfg *ServerConfig) {
				cfg.Cache.Enabled = true
				cfg.Cache.Size = 0
			},
			wantErr: errInvalidCacheSize,
		},
		{
			name: "limiter enabled without rate",
			mutate: func(cfg *ServerConfig) {
				cfg.Limiter.Enabled = true
				cfg.Limiter.RequestsPerSecond = 0
			},
			wantErr: errInvalidLimiterRate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var cfg ServerConfig

			cfg.SetDefaults()
			tc.mutate(&cfg)

			err := cfg.validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
