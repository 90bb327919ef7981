// Package config defines engine configuration and its loading order:
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`
	RedisAddr     string `koanf:"redis_addr"`

	// CatalogCacheTTLSeconds bounds the staleness of cached questionnaire reads.
	CatalogCacheTTLSeconds int `koanf:"catalog_cache_ttl_seconds"`

	// RecomputeGuardTTLSeconds bounds how long a crashed recompute can block
	// the next one for the same project.
	RecomputeGuardTTLSeconds int `koanf:"recompute_guard_ttl_seconds"`

	// MinAssignments is the expert headcount below which the validation gate
	// warns. The exactly-one-ethical-expert rule is fixed and not configurable.
	MinAssignments int `koanf:"min_assignments"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Addr:                     ":8080",
		LogLevel:                 "info",
		MongoURI:                 "mongodb://localhost:27017",
		MongoDatabase:            "ethoscore",
		RedisAddr:                "localhost:6379",
		CatalogCacheTTLSeconds:   300,
		RecomputeGuardTTLSeconds: 120,
		MinAssignments:           3,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ETHOSCORE_CONFIG is set
//  3. env (prefix ETHOSCORE_)
func Load() (*Config, error) {
	cfg := *New()

	k := koanf.New(".")

	if path := os.Getenv("ETHOSCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: ETHOSCORE_ADDR, ETHOSCORE_MONGO_URI, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("ETHOSCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ethoscore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo_uri must not be empty")
	}
	if cfg.MongoDatabase == "" {
		return nil, errors.New("mongo_database must not be empty")
	}
	return &cfg, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CatalogCacheTTL returns the catalog cache TTL as a duration.
func (c *Config) CatalogCacheTTL() time.Duration {
	return time.Duration(c.CatalogCacheTTLSeconds) * time.Second
}

// RecomputeGuardTTL returns the recompute guard TTL as a duration.
func (c *Config) RecomputeGuardTTL() time.Duration {
	return time.Duration(c.RecomputeGuardTTLSeconds) * time.Second
}
