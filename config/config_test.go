package config_test

import (
	"hotel/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, 15, cfg.JWT.AccessExpireMin)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "disable", cfg.DB.Postgres.Read.SSLMode)
	assert.Equal(t, "booking.notification", cfg.Kafka.Topics.Notification)
	assert.Equal(t, 1000, cfg.Kafka.Retry.InitialMs)
	assert.Equal(t, 587, cfg.External.SMTP.Port)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_PAYMENT_BASE_URL", "https://pay.hotel.test/checkout")
	t.Setenv("APP_RATE_LIMITER_ENABLE", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.db")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://pay.hotel.test/checkout", cfg.App.PaymentBaseURL)
	assert.True(t, cfg.App.RateLimiter.Enable)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "replica.db", cfg.DB.Postgres.Read.Host)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "malformed number", key: "CACHE_TTL", value: "five"},
		{name: "non-positive ttl", key: "CACHE_TTL", value: "0"},
		{name: "malformed bool", key: "APP_METRICS_ENABLE", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
