package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	StaticDir    string   `yaml:"static_dir"`
	OpenBrowser  bool     `yaml:"open_browser"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
}

// StorageConfig selects and configures the announcement store.
type StorageConfig struct {
	Type   string       `yaml:"type"`
	Redis  RedisConfig  `yaml:"redis"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig locates the embedded database file.
type SQLiteConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig locates the Redis server and the keys holding the board.
type RedisConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	ListKey    string `yaml:"list_key"`
	CounterKey string `yaml:"counter_key"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a time.Duration written as a Go duration string in YAML
// (e.g. "5s", "1m").
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "localhost:5000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(5 * time.Second)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(10 * time.Second)
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = Duration(time.Minute)
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = StorageRedis
	}
	if cfg.Storage.Redis.Host == "" {
		cfg.Storage.Redis.Host = "localhost"
	}
	if cfg.Storage.Redis.Port == 0 {
		cfg.Storage.Redis.Port = 6379
	}
	if cfg.Storage.Redis.ListKey == "" {
		cfg.Storage.Redis.ListKey = "announcements"
	}
	if cfg.Storage.Redis.CounterKey == "" {
		cfg.Storage.Redis.CounterKey = "last-announcement-id"
	}
	if cfg.Storage.SQLite.DSN == "" {
		cfg.Storage.SQLite.DSN = "bulletin.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("storage.type must be %q or %q, got %q", StorageRedis, StorageSQLite, c.Storage.Type)
	}

	if c.Storage.Redis.Port < 1 || c.Storage.Redis.Port > 65535 {
		return fmt.Errorf("storage.redis.port must be between 1 and 65535, got %d", c.Storage.Redis.Port)
	}
	if c.Storage.Redis.DB < 0 {
		return fmt.Errorf("storage.redis.db must not be negative, got %d", c.Storage.Redis.DB)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}
