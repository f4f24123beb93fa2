package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.DatabaseDSN != DefaultDatabaseDSN {
		t.Fatalf("DatabaseDSN = %q, want %q", cfg.DatabaseDSN, DefaultDatabaseDSN)
	}
	if cfg.UploadsDir != DefaultUploadsDir {
		t.Fatalf("UploadsDir = %q, want %q", cfg.UploadsDir, DefaultUploadsDir)
	}
	if cfg.Session.TTL.Std() != DefaultSessionTTL {
		t.Fatalf("Session.TTL = %v, want %v", cfg.Session.TTL.Std(), DefaultSessionTTL)
	}
}

func TestLoadOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
addr: ":8080"
database_dsn: "postgres://app:pw@localhost/recipes"
session:
  secret: "hush"
  ttl: "30m"
log:
  file: "logs/app.log"
`
	if errWrite := os.WriteFile(path, []byte(raw), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Session.Secret != "hush" {
		t.Fatalf("Session.Secret = %q, want hush", cfg.Session.Secret)
	}
	if cfg.Session.TTL.Std() != 30*time.Minute {
		t.Fatalf("Session.TTL = %v, want 30m", cfg.Session.TTL.Std())
	}
	// Fields absent from the file still default.
	if cfg.UploadsDir != DefaultUploadsDir {
		t.Fatalf("UploadsDir = %q, want %q", cfg.UploadsDir, DefaultUploadsDir)
	}
	if cfg.Log.MaxSizeMB != 50 || cfg.Log.MaxBackups != 5 {
		t.Fatalf("log rotation defaults not applied: %+v", cfg.Log)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if errWrite := os.WriteFile(path, []byte("session:\n  ttl: \"soon\"\n"), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() accepted an unparseable duration")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if errWrite := os.WriteFile(path, []byte("addr: [unclosed"), 0644); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() accepted malformed YAML")
	}
}
