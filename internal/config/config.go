package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=propman port=5432 sslmode=disable"

type Config struct {
	HTTPPort          string
	DatabaseDSN       string
	JWTSecret         string
	CORSOrigins       string
	RedisAddr         string // empty disables the dashboard cache
	DashboardCacheTTL time.Duration
	UploadDir         string
	UploadMaxBytes    int64
	LabelLocale       string // month label language for financial series
	LogLevel          slog.Level
}

// Load reads the environment, after merging a local .env file when present.
func Load() (*Config, error) {
	cfg, err := LoadTool()
	if err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		slog.Warn("CORS_ALLOWED_ORIGINS uses the development default")
	}
	return cfg, nil
}

// LoadTool reads the settings the operator CLI needs. The HTTP secrets are
// not required.
func LoadTool() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		LabelLocale: getEnv("LABEL_LOCALE", "pt-BR"),
	}

	ttl, err := time.ParseDuration(getEnv("DASHBOARD_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("DASHBOARD_CACHE_TTL: %w", err)
	}
	cfg.DashboardCacheTTL = ttl

	maxBytes, err := strconv.ParseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10, 64)
	if err != nil || maxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be a positive integer")
	}
	cfg.UploadMaxBytes = maxBytes

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		slog.Warn("DATABASE_DSN uses the development default, set your own Postgres connection for production")
	}
	return cfg, nil
}

// AllowedOrigins splits the comma separated CORS list.
func (c *Config) AllowedOrigins() string {
	origins := strings.Split(c.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return strings.Join(origins, ",")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
