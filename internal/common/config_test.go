package common

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(4<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "./data", cfg.Database.DataDir)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "Extractions", cfg.Export.SheetName)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("DB_URL", "postgres://localhost/claims")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()
	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, "postgres://localhost/claims", cfg.Database.DSN)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := LoadConfig()
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Server.ListenAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.Database.DSN = ""
	cfg.Database.DataDir = ""
	assert.Error(t, cfg.Validate())
}
