package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Console ConsoleConfig
}

// BackendConfig contains parameters for the VisionHub API backend.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SessionConfig controls operator session lifetime.
type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// ConsoleConfig contains interval configuration for the console's caches
// and janitors.
type ConsoleConfig struct {
	VideoCacheTTL time.Duration
	ConfirmTTL    time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Backend
	cfg.Backend.URL = getEnv("BACKEND_URL", "")

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Session
	cfg.Session.CookieName = getEnv("SESSION_COOKIE_NAME", "console_session")
	cfg.Session.CookieSecure = getEnv("SESSION_COOKIE_SECURE", "false") == "true"

	// Durations
	var err error
	if cfg.Backend.Timeout, err = parseDurationEnv("BACKEND_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Console.VideoCacheTTL, err = parseDurationEnv("VIDEO_CACHE_TTL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid VIDEO_CACHE_TTL: %w", err)
	}
	if cfg.Console.ConfirmTTL, err = parseDurationEnv("CONFIRM_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CONFIRM_TTL: %w", err)
	}
	if cfg.Console.SweepInterval, err = parseDurationEnv("SWEEP_INTERVAL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	if cfg.Backend.URL == "" {
		return nil, errors.New("BACKEND_URL must be set to the VisionHub API base URL")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
