package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PONGELO_PORT", "9090")
	t.Setenv("PONGELO_STORAGE", "redis")
	t.Setenv("PONGELO_REDIS_URL", "redis://redis.internal:6379")
	t.Setenv("PONGELO_BOT_TOKEN", "shared-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "redis://redis.internal:6379", cfg.RedisURL)
	assert.Equal(t, "shared-secret", cfg.BotToken)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PONGELO_PORT", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "PONGELO_PORT")
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("PONGELO_STORAGE", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "PONGELO_STORAGE")
}

func TestValidateRequiresRedisURL(t *testing.T) {
	cfg := &Config{Port: 8080, Storage: StorageRedis}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "PONGELO_REDIS_URL")
}
