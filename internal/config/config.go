// Package config loads the YAML application configuration. A missing file is
// not an error; defaults produce a runnable local setup backed by SQLite.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or individual fields are absent.
const (
	DefaultAddr        = ":3003"
	DefaultDatabaseDSN = "data/recipes.db"
	DefaultUploadsDir  = "data/img"
	DefaultSessionTTL  = 24 * time.Hour
)

// Config is the full application configuration.
type Config struct {
	Addr        string        `yaml:"addr"`         // HTTP listen address.
	DatabaseDSN string        `yaml:"database_dsn"` // SQLite path or PostgreSQL URL.
	UploadsDir  string        `yaml:"uploads_dir"`  // Directory for uploaded images.
	Session     SessionConfig `yaml:"session"`
	Log         LogConfig     `yaml:"log"`
}

// SessionConfig controls session cookies and expiry.
type SessionConfig struct {
	Secret string   `yaml:"secret"` // HMAC secret for the session cookie.
	TTL    Duration `yaml:"ttl"`    // Idle expiry for session rows.
}

// LogConfig controls log output.
type LogConfig struct {
	File       string `yaml:"file"`        // Log file path; empty logs to stdout.
	MaxSizeMB  int    `yaml:"max_size_mb"` // Rotation threshold per file.
	MaxBackups int    `yaml:"max_backups"` // Rotated files to keep.
}

// Duration wraps time.Duration for YAML decoding ("24h", "30m", ...).
type Duration time.Duration

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads the configuration from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if errDecode := yaml.Unmarshal(data, &cfg); errDecode != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, errDecode)
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = DefaultAddr
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		c.DatabaseDSN = DefaultDatabaseDSN
	}
	if strings.TrimSpace(c.UploadsDir) == "" {
		c.UploadsDir = DefaultUploadsDir
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = Duration(DefaultSessionTTL)
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 5
	}
}
