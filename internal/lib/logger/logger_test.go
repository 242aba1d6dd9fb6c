package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		env, level string
		want       slog.Level
	}{
		{EnvLocal, "", slog.LevelDebug},
		{EnvDev, "", slog.LevelDebug},
		{EnvProd, "", slog.LevelInfo},
		// неизвестное окружение ведёт себя как prod
		{"staging", "", slog.LevelInfo},
		{EnvProd, "debug", slog.LevelDebug},
		{EnvDev, "WARN", slog.LevelWarn},
		{EnvProd, " error ", slog.LevelError},
		{EnvDev, "verbose", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLevel(tt.env, tt.level))
		})
	}
}

func TestNewLogger_JSONCarriesServiceAndEnv(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, EnvProd, "")

	log.Debug("hidden")
	log.Info("order created", slog.Int64("orderID", 7))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "order created", rec["msg"])
	assert.Equal(t, ServiceName, rec["service"])
	assert.Equal(t, EnvProd, rec["env"])
	assert.Equal(t, 7.0, rec["orderID"])
}

func TestNewLogger_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, EnvLocal, "")

	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	log.Info("database seeded successfully")
	assert.Contains(t, buf.String(), "database seeded successfully")
	assert.NotContains(t, buf.String(), `"service"`)
}

func TestSetupLogger_LevelOverride(t *testing.T) {
	log := SetupLogger(EnvLocal, "error")
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}
