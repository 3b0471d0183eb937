// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds the process settings. Command-line flags override it.
type Config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	Store        string        `env:"STORE" envDefault:"memory"`
	SessionDir   string        `env:"SESSION_DIR" envDefault:".stepwise/sessions"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	MaxSessions  int           `env:"MAX_SESSIONS" envDefault:"1024"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	MaxInputSize int           `env:"MAX_INPUT_SIZE" envDefault:"4096"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are stored
	// encrypted; FallbackKeys still decrypt sessions saved before a rotation.
	EncryptionKey string   `env:"ENCRYPTION_KEY"`
	FallbackKeys  []string `env:"ENCRYPTION_FALLBACK_KEYS" envSeparator:","`

	// LogRedact lists patterns of field keys masked in logged submissions.
	LogRedact []string `env:"LOG_REDACT" envDefault:"(?i)password,(?i)secret,(?i)token" envSeparator:","`
}

// Prefix namespaces every variable.
const Prefix = "STEPWISE_"

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q: want memory, file or redis", c.Store)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", c.MaxSessions)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("max input size must be positive, got %d", c.MaxInputSize)
	}
	return nil
}
