package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitWithWriter_JSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "hotel-api"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Debug().Msg("dropped")
	log.Info().Str("reference", "AB12CD34EF").Msg("booking created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))

	assert.Equal(t, "hotel-api", entry["service"])
	assert.Equal(t, "AB12CD34EF", entry["reference"])
	assert.Equal(t, "booking created", entry["message"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestInitWithWriter_Console(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Info().Msg("room added")

	assert.Contains(t, buf.String(), "room added")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestSetLogLevel(t *testing.T) {
	restore(t)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "warn", want: zerolog.WarnLevel},
		{level: "ERROR", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.TraceLevel},
		{level: "verbose", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		cfg := &config.Config{}
		cfg.Server.LogLevel = tt.level

		logger.SetLogLevel(cfg)

		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "level %q", tt.level)
	}
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("failed to reserve room"))

	assert.Contains(t, buf.String(), "failed to reserve room")
	assert.Contains(t, buf.String(), "logger_test")
}
