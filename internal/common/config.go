// Package common provides shared utilities for CryptoNav
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for CryptoNav
type Config struct {
	Environment string       `toml:"environment"`
	Server      ServerConfig `toml:"server"`
	API         APIConfig    `toml:"api"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// APIConfig holds configuration for the CryptoNav backend API client
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// StorageConfig holds local storage configuration. The only durable state the
// dashboard keeps is the session token slot under DataPath.
type StorageConfig struct {
	DataPath string `toml:"data_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Storage: StorageConfig{
			DataPath: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CRYPTONAV_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CRYPTONAV_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CRYPTONAV_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if url := os.Getenv("CRYPTONAV_API_URL"); url != "" {
		config.API.BaseURL = url
	}

	if timeout := os.Getenv("CRYPTONAV_API_TIMEOUT"); timeout != "" {
		config.API.Timeout = timeout
	}

	if path := os.Getenv("CRYPTONAV_DATA_PATH"); path != "" {
		config.Storage.DataPath = path
	}

	if level := os.Getenv("CRYPTONAV_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
