// Package config loads the YAML configuration shared by the server and the
// CLI, with environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Environment variables read by ApplyEnv
const (
	EnvListen      = "NCR_EVENTS_LISTEN"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvStore       = "NCR_EVENTS_STORE"
)

// StoreConfig selects and configures the event store backend.
type StoreConfig struct {
	// Driver is one of "memory", "file" or "postgres".
	Driver string `yaml:"driver" json:"driver"`
	// Path is the data directory of the file driver.
	Path string `yaml:"path" json:"path"`
	// DSN is the PostgreSQL connection string.
	DSN string `yaml:"dsn" json:"dsn"`
	// MaxConns caps the PostgreSQL pool size.
	MaxConns int32 `yaml:"max_conns" json:"max_conns"`
}

// RendererConfig configures how listing pages are fetched.
type RendererConfig struct {
	// Kind is "http" (plain GET) or "chromium" (headless browser).
	Kind string `yaml:"kind" json:"kind"`
	// Timeout bounds one page render, e.g. "30s".
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	// ChromePath points at a Chromium binary; empty searches PATH.
	ChromePath string `yaml:"chrome_path" json:"chrome_path"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address of the API server.
	Listen string `yaml:"listen" json:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	Store    StoreConfig    `yaml:"store" json:"store"`
	Renderer RendererConfig `yaml:"renderer" json:"renderer"`

	// Schedule is a cron spec (e.g. "0 */6 * * *") for periodic ingestion
	// in serve mode. Empty disables the scheduler.
	Schedule string `yaml:"schedule" json:"schedule"`

	// APIURL is the base URL the CLI client queries.
	APIURL string `yaml:"api_url" json:"api_url"`

	// Seed fixes the synthetic generator; 0 seeds from the clock.
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   "127.0.0.1:8080",
		LogLevel: "info",
		Store: StoreConfig{
			Driver:   DriverFile,
			Path:     "~/.local/share/ncr-events",
			MaxConns: 4,
		},
		Renderer: RendererConfig{
			Kind:    "http",
			Timeout: 30 * time.Second,
		},
		Schedule: "0 */6 * * *",
		APIURL:   "http://127.0.0.1:8080",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Listen == "" {
		c.Listen = def.Listen
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = def.Store.Driver
	}
	if c.Store.Path == "" {
		c.Store.Path = def.Store.Path
	}
	if c.Store.MaxConns <= 0 {
		c.Store.MaxConns = def.Store.MaxConns
	}

	c.Renderer.Kind = strings.ToLower(strings.TrimSpace(c.Renderer.Kind))
	if c.Renderer.Kind == "" {
		c.Renderer.Kind = def.Renderer.Kind
	}
	if c.Renderer.Timeout <= 0 {
		c.Renderer.Timeout = def.Renderer.Timeout
	}

	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APIURL == "" {
		c.APIURL = def.APIURL
	}
}

// Validate reports configuration values that cannot work
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}

	switch c.Renderer.Kind {
	case "http", "chromium":
	default:
		return fmt.Errorf("unknown renderer kind: %s", c.Renderer.Kind)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv. DATABASE_URL selects the postgres driver unless
// NCR_EVENTS_STORE names another.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvListen); ok && v != "" {
		c.Listen = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.Store.DSN = v
		c.Store.Driver = DriverPostgres
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
}

// DefaultPath returns ~/.config/ncr-events/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "ncr-events", "config.yaml")
}

// Load loads configuration from the given YAML path.
//
// A missing file is not an error: the defaults are returned and nothing
// is written. Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.Normalize()
	return cfg, nil
}
