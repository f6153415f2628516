package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/config"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.GRPC.Enabled)
	assert.Equal(t, "noop", cfg.Cache.Driver)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Matching.MaxActiveOrders)
	assert.Equal(t, 15, cfg.Matching.FlatTravelMinutes)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_DRIVER", "SQLite3")
	t.Setenv("DB_DSN", "file:other.db")
	t.Setenv("MATCHING_MAX_ACTIVE_ORDERS", "5")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DEFAULT_TTL", "30s")
	t.Setenv("OBS_PROMETHEUS_PATH", "prom")
	t.Setenv("OBS_LOG_LEVEL", " DEBUG ")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:other.db", cfg.Database.DSN)
	assert.Equal(t, 5, cfg.Matching.MaxActiveOrders)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, "/prom", cfg.Observability.PrometheusPath)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Messaging.Kafka.Brokers)
}

func TestNewRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"http port":       {"HTTP_PORT": "0"},
		"db driver":       {"DB_DRIVER": "oracle"},
		"empty dsn":       {"DB_DSN": ""},
		"rider capacity":  {"MATCHING_MAX_ACTIVE_ORDERS": "0"},
		"cache driver":    {"CACHE_ENABLED": "true", "CACHE_DRIVER": "memcached"},
		"messaging topic": {"MESSAGING_ENABLED": "true", "KAFKA_TOPIC": ""},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.New()
			assert.Error(t, err)
		})
	}
}
