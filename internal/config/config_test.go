package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "", cfg.API.Token)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "smarthospital/alerts/refresh", cfg.MQTT.Topic)

	assert.Equal(t, 30, cfg.Watch.PollInterval)
	assert.Equal(t, 24, cfg.Watch.NotifyTTLHours)
	assert.Equal(t, 5, cfg.Watch.ThrottleMinutes)
	assert.Equal(t, "watch-alerts", cfg.Watch.ResolverIdentity)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.hospital.example")
	t.Setenv("API_TOKEN", "secret-token")
	t.Setenv("API_TIMEOUT_SECONDS", "10")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("POLL_INTERVAL", "15")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.hospital.example", cfg.API.BaseURL)
	assert.Equal(t, "secret-token", cfg.API.Token)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, 15, cfg.Watch.PollInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// 非数字的整数项退回默认值，不报错
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Watch.PollInterval)
}

func TestLoad_NonPositiveTimeoutRejected(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "value")
	assert.Equal(t, "value", getEnv("TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getEnv("TEST_CONFIG_MISSING", "default"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, parseInt("42", 0))
	assert.Equal(t, 7, parseInt("abc", 7))
	assert.Equal(t, 7, parseInt("", 7))
}
