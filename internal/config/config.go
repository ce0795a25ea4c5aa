// Package config loads service settings.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional TOML file, and the environment (a .env file in the working
// directory is loaded into the environment first).
//
// Example TOML file:
//
//	port = 8080
//	upload_dir = "uploads"
//	session_ttl = "5m"
//	allowed_origins = ["https://*", "http://*"]
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port            int           `toml:"port"`
	UploadDir       string        `toml:"upload_dir"`
	OutputDir       string        `toml:"output_dir"`
	MaxUploadMB     int64         `toml:"max_upload_mb"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	CleanupInterval time.Duration `toml:"cleanup_interval"`
	LogLevel        string        `toml:"log_level"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
}

func Default() *Config {
	return &Config{
		Port:            8080,
		UploadDir:       "uploads",
		OutputDir:       "output",
		MaxUploadMB:     25,
		SessionTTL:      5 * time.Minute,
		CleanupInterval: 10 * time.Minute,
		LogLevel:        "info",
		AllowedOrigins:  []string{"https://*", "http://*"},
	}
}

// Load builds the configuration. path names a TOML file; when empty the
// CONFIG_FILE environment variable is consulted, and with neither set only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_MB %q: %w", v, err)
		}
		c.MaxUploadMB = mb
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.SessionTTL = d
	}
	if v := os.Getenv("CLEANUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CLEANUP_INTERVAL %q: %w", v, err)
		}
		c.CleanupInterval = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d MB", c.MaxUploadMB)
	}
	if c.SessionTTL <= 0 || c.CleanupInterval <= 0 {
		return errors.New("session ttl and cleanup interval must be positive")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// NewLogger returns a logrus logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
