// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr       string
	LogLevel         string
	LogFormat        string
	MetricsNamespace string
	MetricsPath      string
	PostgresDSN      string
	ShutdownTimeout  time.Duration
	QueryTimeout     time.Duration
}

// ArchiveEnabled reports whether accepted events are persisted.
func (c *Config) ArchiveEnabled() bool {
	return c.PostgresDSN != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":8001")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_NAMESPACE", "ivr")
	v.SetDefault("METRICS_PATH", "/metrics")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("QUERY_TIMEOUT", "10s")
}

// Load reads CONFIG_FILE when set and lets environment variables override it.
// A missing file falls back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
		MetricsPath:      v.GetString("METRICS_PATH"),
		PostgresDSN:      v.GetString("POSTGRES_DSN"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
		QueryTimeout:     v.GetDuration("QUERY_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR must not be empty")
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/': %q", c.MetricsPath)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive: %s", c.ShutdownTimeout)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
