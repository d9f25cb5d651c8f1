// Package config loads the server's TOML configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

// Config represents the todo-server configuration file.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Auth     Auth     `toml:"auth"`
	Log      Log      `toml:"log"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// AllowedOrigins are the CORS origins browsers may call from.
	AllowedOrigins []string `toml:"allowed-origins"`

	// RequireToken rejects folder and todo requests without a valid bearer
	// token. Off by default: every route is public.
	RequireToken bool `toml:"require-token"`

	// DistinctErrors reports not-found, conflict, credential and format
	// failures with their own status codes instead of 500.
	DistinctErrors bool `toml:"distinct-errors"`
}

// Database selects the storage driver.
type Database struct {
	// Driver is "sqlite3" or "mysql".
	Driver string `toml:"driver"`

	// DSN is a file path for sqlite3 and a connection string for mysql.
	// Empty means the default sqlite file.
	DSN string `toml:"dsn"`
}

// Auth contains password hashing configuration.
type Auth struct {
	BcryptCost int `toml:"bcrypt-cost"`
}

// Log contains logger configuration.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: Database{
			Driver: "sqlite3",
		},
		Auth: Auth{
			BcryptCost: 10,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("failed to parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3":
	case "mysql":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unsupported log.format %q", c.Log.Format)
	}

	// Zero selects bcrypt.DefaultCost.
	if cost := c.Auth.BcryptCost; cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
		return fmt.Errorf("auth.bcrypt-cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
