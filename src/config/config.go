// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile       = "CERT_MONITOR_CONFIG_FILE"
	EnvMinRemainingDays = "CERT_MONITOR_MIN_REMAINING_DAYS"
	EnvDomainsLocation  = "CERT_MONITOR_DOMAINS_LOCATION"
)

// Defaults applied before any file or environment value.
const (
	DefaultMinRemainingDays = 10
	DefaultTimeoutSeconds   = 10
	DefaultConcurrency      = 8
	DefaultPort             = 443
	DefaultWatchInterval    = "1h"
	DefaultMetricsAddr      = ":9090"
)

// ErrNegativeDays indicates a negative minimum remaining days value.
var ErrNegativeDays = errors.New("config error: minRemainingDays must not be negative")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config is the monitor configuration.
type Config struct {
	// Defaults: Settings for every domain check
	Defaults struct {
		// MinRemainingDays: Days of validity every certificate must have left
		MinRemainingDays int `json:"minRemainingDays" yaml:"minRemainingDays"`
		// Timeout: Per-domain deadline in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// Concurrency: Domains checked at once
		Concurrency int `json:"concurrency" yaml:"concurrency"`
		// Port: TLS port dialed on every domain
		Port int `json:"port" yaml:"port"`
	} `json:"defaults" yaml:"defaults"`

	// Source: Where the domain list lives
	Source struct {
		// Location: s3://bucket/key, a file path, or "-" for stdin
		Location string `json:"location,omitempty" yaml:"location,omitempty"`
	} `json:"source" yaml:"source"`

	// Watch: Settings for periodic checks
	Watch struct {
		// Interval: Time between runs, as a Go duration string
		Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
		// MetricsAddr: Listen address of the Prometheus endpoint, empty disables it
		MetricsAddr string `json:"metricsAddr,omitempty" yaml:"metricsAddr,omitempty"`
	} `json:"watch" yaml:"watch"`
}

// Default returns a Config holding only built-in defaults.
func Default() *Config {
	c := &Config{}
	c.Defaults.MinRemainingDays = DefaultMinRemainingDays
	c.Defaults.Timeout = DefaultTimeoutSeconds
	c.Defaults.Concurrency = DefaultConcurrency
	c.Defaults.Port = DefaultPort
	c.Watch.Interval = DefaultWatchInterval
	c.Watch.MetricsAddr = DefaultMetricsAddr
	return c
}

// detectConfigFormat determines the configuration file format based on file extension.
// Matching is case-insensitive and anything that is not YAML is parsed as JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config error: failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config error: failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load resolves the configuration.
//
// Parameters:
//   - configPath: Path to a .json, .yaml or .yml file; when empty the
//     CERT_MONITOR_CONFIG_FILE environment variable is consulted, and when
//     that is empty too only defaults and environment overrides apply
//
// Returns:
//   - *Config: The resolved configuration
//   - error: File read or parse errors, a malformed environment override,
//     or [ErrNegativeDays]
//
// Out of range timeout, concurrency and port values are reset to their
// defaults; a negative minimum remaining days value is rejected.
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("config error: failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvMinRemainingDays)); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid %s %q: %w", EnvMinRemainingDays, v, err)
		}
		config.Defaults.MinRemainingDays = days
	}
	if v := strings.TrimSpace(os.Getenv(EnvDomainsLocation)); v != "" {
		config.Source.Location = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects a negative minimum remaining days value and resets other
// invalid values to their defaults.
func (c *Config) Validate() error {
	if c.Defaults.MinRemainingDays < 0 {
		return ErrNegativeDays
	}
	if c.Defaults.Timeout <= 0 {
		c.Defaults.Timeout = DefaultTimeoutSeconds
	}
	if c.Defaults.Concurrency <= 0 {
		c.Defaults.Concurrency = DefaultConcurrency
	}
	if c.Defaults.Port <= 0 || c.Defaults.Port > 65535 {
		c.Defaults.Port = DefaultPort
	}
	if d, err := time.ParseDuration(c.Watch.Interval); err != nil || d <= 0 {
		c.Watch.Interval = DefaultWatchInterval
	}
	return nil
}

// TimeoutDuration returns the per-domain deadline.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Defaults.Timeout) * time.Second
}

// WatchInterval returns the time between watch runs.
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWatchInterval)
	}
	return d
}
