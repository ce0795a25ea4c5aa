package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "UPLOAD_DIR", "OUTPUT_DIR", "MAX_UPLOAD_MB",
	"SESSION_TTL", "CLEANUP_INTERVAL", "LOG_LEVEL", "ALLOWED_ORIGINS",
}

// isolate clears config variables and runs the test from an empty directory
// so a developer's .env does not leak in.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.UploadDir != "uploads" || cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("Unexpected defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes() != 25<<20 {
		t.Fatalf("Unexpected upload limit %d", cfg.MaxUploadBytes())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "pagerange.toml")
	data := `
port = 9000
upload_dir = "in"
session_ttl = "1h"
log_level = "debug"
allowed_origins = ["http://localhost:3000"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Expected env PORT to win, got %d", cfg.Port)
	}
	if cfg.UploadDir != "in" || cfg.SessionTTL != time.Hour {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("Expected default output dir, got %q", cfg.OutputDir)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected origins %q", cfg.AllowedOrigins)
	}
	if cfg.NewLogger().GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug logger")
	}
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "pagerange.toml")
	if err := os.WriteFile(path, []byte("port = 9200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("Expected port from CONFIG_FILE, got %d", cfg.Port)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("OUTPUT_DIR")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OUTPUT_DIR=results\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("OUTPUT_DIR") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "results" {
		t.Fatalf("Expected OUTPUT_DIR from .env, got %q", cfg.OutputDir)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "eighty"},
		{"PORT", "70000"},
		{"MAX_UPLOAD_MB", "0"},
		{"SESSION_TTL", "soon"},
		{"LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Fatal("Expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		isolate(t)
		if _, err := Load("does-not-exist.toml"); err == nil {
			t.Fatal("Expected error")
		}
	})
}
