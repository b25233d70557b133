package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when BULLETIN_CONFIG is unset.
const DefaultPath = "./bulletin.yaml"

// Path returns the config file path from the environment or the default.
func Path() string {
	if path := os.Getenv("BULLETIN_CONFIG"); path != "" {
		return path
	}
	return DefaultPath
}

// Load reads configuration with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file at path
// 3. Default values (lowest priority)
//
// A missing file is not an error. A file that exists but cannot be parsed
// is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file -- defaults and environment only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(cfg)
	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyEnvironmentOverrides(cfg *Config) error {
	if val := os.Getenv("BULLETIN_ADDR"); val != "" {
		cfg.Server.Addr = val
	}
	if val := os.Getenv("BULLETIN_STORAGE_TYPE"); val != "" {
		cfg.Storage.Type = val
	}
	if val := os.Getenv("BULLETIN_REDIS_HOST"); val != "" {
		cfg.Storage.Redis.Host = val
	}
	if val := os.Getenv("BULLETIN_REDIS_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid BULLETIN_REDIS_PORT %q: %w", val, err)
		}
		cfg.Storage.Redis.Port = port
	}
	if val := os.Getenv("BULLETIN_SQLITE_DSN"); val != "" {
		cfg.Storage.SQLite.DSN = val
	}
	if val := os.Getenv("BULLETIN_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	return nil
}
