// Package config loads service configuration from environment variables,
// with optional overrides from a local .env file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage backend names accepted by PONGELO_STORAGE
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all service configuration
type Config struct {
	Host string `env:"PONGELO_HOST"`
	Port int    `env:"PONGELO_PORT" envDefault:"8080"`

	// Storage selects the backend: "memory" or "redis"
	Storage  string `env:"PONGELO_STORAGE" envDefault:"memory"`
	RedisURL string `env:"PONGELO_REDIS_URL" envDefault:"redis://localhost:6379"`

	// BotToken enables the chat webhook when set
	BotToken string `env:"PONGELO_BOT_TOKEN"`

	LogLevel string `env:"PONGELO_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
// A .env file is applied first when present, for local development.
func Load() (*Config, error) {
	// In production the environment is injected directly; a missing
	// .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration constraints
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PONGELO_PORT: %d (must be 1-65535)", c.Port)
	}

	switch c.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("invalid PONGELO_STORAGE: %q (must be %q or %q)", c.Storage, StorageMemory, StorageRedis)
	}

	if c.Storage == StorageRedis && c.RedisURL == "" {
		return fmt.Errorf("PONGELO_REDIS_URL is required when PONGELO_STORAGE is %q", StorageRedis)
	}

	return nil
}
