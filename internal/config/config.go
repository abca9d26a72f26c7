// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by the inkling commands.
// Command-line flags override these values.
type Config struct {
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8080"`
	StoriesDir  string        `env:"STORIES_DIR" envDefault:"stories"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string        `env:"REDIS_PREFIX" envDefault:"inkling:counters:"`
	CounterTTL  time.Duration `env:"COUNTER_TTL" envDefault:"0s"`
}

// Prefix is prepended to every variable name.
const Prefix = "INKLING_"

// Load parses the INKLING_* environment variables.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses variables from environ instead of the process
// environment when environ is non-nil.
func LoadFrom(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	return cfg, nil
}
