// Package config provides configuration loading for decisiond.
package config

import (
	"fmt"

	"github.com/crestlinelabs/decisiond/internal/decision"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	// Level is debug, info, warn, or error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// StoreConfig holds the dismissal store settings.
type StoreConfig struct {
	// Path is the SQLite database location. Empty means in-memory only,
	// which loses dismissals on restart.
	Path string `koanf:"path"`
}

// SnapshotConfig holds the data snapshot settings.
type SnapshotConfig struct {
	// Path is the JSON snapshot file.
	Path string `koanf:"path"`

	// Watch re-evaluates the engine when the snapshot file changes.
	Watch bool `koanf:"watch"`
}

// Config is the root configuration.
type Config struct {
	Server   ServerConfig    `koanf:"server"`
	Logging  LoggingConfig   `koanf:"logging"`
	Store    StoreConfig     `koanf:"store"`
	Snapshot SnapshotConfig  `koanf:"snapshot"`
	Engine   decision.Config `koanf:"engine"`
}

// NewDefaultConfig returns the default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8420,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Snapshot: SnapshotConfig{
			Watch: true,
		},
		Engine: decision.DefaultConfig(),
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging format must be json or console, got %q", c.Logging.Format)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	return nil
}
