// config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/missiondb/mission-dashboard/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Config holds application configuration values
type Config struct {
	Env        string
	ServerPort string
	LogLevel   string

	DatabaseDir     string
	DatabaseFile    string
	SchemaFile      string // Empty means the embedded schema script
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	CORSAllowedOrigins []string
	RateLimitPerMinute int // 0 disables rate limiting
}

// DatabasePath returns the full path of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DatabaseDir, c.DatabaseFile)
}

// IsProduction reports whether the process runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	env := getEnv("APP_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Env:                env,
		ServerPort:         strings.TrimPrefix(getEnv("SERVER_PORT", "3001"), ":"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseDir:        getEnv("DATABASE_DIRECTORY", "data"),
		DatabaseFile:       getEnv("DATABASE_FILE", "missions.db"),
		SchemaFile:         os.Getenv("SCHEMA_FILE"),
		MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10, 1),
		MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5, 0),
		ConnMaxLifetime:    time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30, 1)) * time.Minute,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 600, 0),
	}

	if cfg.DatabaseFile == "" {
		return nil, errors.New("DATABASE_FILE must not be empty")
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		customLog.Warnf("DB_MAX_IDLE_CONNS (%d) exceeds DB_MAX_OPEN_CONNS (%d). Clamping.", cfg.MaxIdleConns, cfg.MaxOpenConns)
		cfg.MaxIdleConns = cfg.MaxOpenConns
	}

	logger.SetLevel(cfg.LogLevel)

	customLog.Printf("Configuration loaded successfully. Port: %s, Database: %s, Pool size: %d", cfg.ServerPort, cfg.DatabasePath(), cfg.MaxOpenConns)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt parses an integer variable, falling back to the default when it is
// missing, malformed or below min.
func getEnvInt(key string, fallback, min int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		customLog.Warnf("Invalid %s '%s'. Using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
