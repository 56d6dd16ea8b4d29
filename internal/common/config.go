package common

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Export   ExportConfig
	LogLevel slog.Level
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// DatabaseConfig holds archive store configuration.
// DSN selects the backend: a postgres:// URL opens the Postgres store,
// anything else is treated as a SQLite path. Empty DSN means DataDir/claims.db.
type DatabaseConfig struct {
	DSN             string
	DataDir         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// ExportConfig holds XLSX export configuration
type ExportConfig struct {
	SheetName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    getEnvAsInt64("MAX_BODY_BYTES", 4<<20),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			DataDir:         getEnv("DATA_DIR", "./data"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Export: ExportConfig{
			SheetName: getEnv("EXPORT_SHEET", "Extractions"),
		},
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return NewAppError("CONFIG_ERROR", "LISTEN_ADDR is required", ErrInvalidInput)
	}
	if c.Database.DSN == "" && c.Database.DataDir == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL or DATA_DIR is required", ErrInvalidInput)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
