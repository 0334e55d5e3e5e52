// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	_ "codeberg.org/stopclock/stopclock/core/audit" // setup better logging format
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Basic struct {
		Host       string `env:"STOPCLOCK_HOST,overwrite"       yaml:"host"`
		Port       string `env:"STOPCLOCK_PORT,overwrite"       yaml:"port"`
		UnixSocket string `env:"STOPCLOCK_UNIXSOCKET"           yaml:"unixSocket"`
	} `yaml:"basic"`

	Development struct {
		// InDevelopment is the deployment mode switch. Timing headers are
		// only emitted by the default enabled check when this is true.
		InDevelopment bool `env:"STOPCLOCK_DEV,overwrite" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"STOPCLOCK_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"STOPCLOCK_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"STOPCLOCK_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`

	// Demo controls the built-in demonstration pages. The delays simulate a
	// slow backing store so the emitted timings are visible in browser
	// developer tools.
	Demo struct {
		FetchDelay time.Duration `env:"STOPCLOCK_DEMO_FETCH_DELAY,overwrite" yaml:"fetchDelay"`
		CountDelay time.Duration `env:"STOPCLOCK_DEMO_COUNT_DELAY,overwrite" yaml:"countDelay"`
		LoadDelay  time.Duration `env:"STOPCLOCK_DEMO_LOAD_DELAY,overwrite"  yaml:"loadDelay"`
		PageSize   int           `env:"STOPCLOCK_DEMO_PAGE_SIZE,overwrite"   yaml:"pageSize"`
	} `yaml:"demo"`

	Cache struct {
		Enabled  bool `env:"STOPCLOCK_CACHE,overwrite"          yaml:"enabled"`
		Size     int  `env:"STOPCLOCK_CACHE_SIZE,overwrite"     yaml:"cacheSize"`
		Compress bool `env:"STOPCLOCK_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	Limiter struct {
		Enabled           bool `env:"STOPCLOCK_LIMITER,overwrite"       yaml:"enabled"`
		RequestsPerSecond int  `env:"STOPCLOCK_LIMITER_RPS,overwrite"   yaml:"requestsPerSecond"`
		Burst             int  `env:"STOPCLOCK_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`
}

// LoadConfig loads the configuration from various sources.
//
// Precedence for the config file path: -config flag, then the
// STOPCLOCK_CONFIGFILE environment variable, then ./config.yaml.
func (cfg *ServerConfig) LoadConfig() error {
	configFilePath := flag.String("config", "./config.yaml", "path to the YAML configuration file")
	flag.Parse()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	path := *configFilePath
	if !configFlagUserSet {
		if envVar := os.Getenv("STOPCLOCK_CONFIGFILE"); envVar != "" {
			path = envVar
		}
	}

	cfg.SetDefaults()

	if err := cfg.readYAML(path); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	if cfg.Development.InDevelopment {
		cfg.print()
	}

	return nil
}
