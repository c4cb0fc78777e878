// Package config loads cellfill settings from a YAML file and the environment.
//
// Precedence, lowest first: defaults, file, CELLFILL_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file is not an error.
const DefaultPath = "cellfill.yaml"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" envPrefix:"LOG_"`
	Locale  string        `mapstructure:"locale" env:"LOCALE"`
	Seed    uint64        `mapstructure:"seed" env:"SEED"` // 0 seeds from the clock
	Store   StoreConfig   `mapstructure:"store" envPrefix:"STORE_"`
	Server  ServerConfig  `mapstructure:"server" envPrefix:"SERVER_"`
	Display DisplayConfig `mapstructure:"display" envPrefix:"DISPLAY_"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL"`
	Format string `mapstructure:"format" env:"FORMAT"`
}

// StoreConfig selects where session snapshots live.
type StoreConfig struct {
	Backend string        `mapstructure:"backend" env:"BACKEND"`
	Dir     string        `mapstructure:"dir" env:"DIR"`
	Redis   RedisConfig   `mapstructure:"redis" envPrefix:"REDIS_"`
	LockTTL time.Duration `mapstructure:"lock_ttl" env:"LOCK_TTL"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" env:"ADDR"`
	Password string        `mapstructure:"password" env:"PASSWORD"`
	DB       int           `mapstructure:"db" env:"DB"`
	Prefix   string        `mapstructure:"prefix" env:"PREFIX"`
	TTL      time.Duration `mapstructure:"ttl" env:"TTL"`
}

// ServerConfig configures the HTTP and MCP servers.
type ServerConfig struct {
	Port            int           `mapstructure:"port" env:"PORT"`
	MCPPort         int           `mapstructure:"mcp_port" env:"MCP_PORT"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	Metrics         bool          `mapstructure:"metrics" env:"METRICS"`
}

// DisplayConfig configures the terminal front end.
type DisplayConfig struct {
	Height int  `mapstructure:"height" env:"HEIGHT"` // Rows kept on screen; 0 follows the terminal
	Color  bool `mapstructure:"color" env:"COLOR"`
	Banner bool `mapstructure:"banner" env:"BANNER"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Locale: "ru",
		Store: StoreConfig{
			Backend: StoreMemory,
			Dir:     ".cellfill/sessions",
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "cellfill:session:"},
			LockTTL: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:            8080,
			MCPPort:         8081,
			ShutdownTimeout: 5 * time.Second,
			Metrics:         true,
		},
		Display: DisplayConfig{Color: true, Banner: true},
	}
}

// Load reads path (if it exists), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decodeYAML(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		case os.IsNotExist(err) && path == DefaultPath:
			// optional
		default:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "CELLFILL_"}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// decodeYAML parses the document into a generic map first so that durations
// written as "5s" and loosely typed scalars decode onto the struct.
func decodeYAML(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store backend %q (want memory, file or redis)", c.Store.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
