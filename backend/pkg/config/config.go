package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	apperrors "filmorate/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string

	// HTTP
	RateLimitRPS    float64 // Per-client requests per second, 0 disables limiting
	RateLimitBurst  int
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// Data
	SeedFile string // Optional YAML fixture loaded at startup
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := LoadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadEnv reads configuration from environment variables without validating
// it, so callers can apply overrides first and call Validate once
func LoadEnv() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 100),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		SeedFile:        getEnv("SEED_FILE", ""),
	}
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return apperrors.NewConfigValidationFailed("PORT", "must be a number between 1 and 65535")
	}
	if c.Env != "development" && c.Env != "production" {
		return apperrors.NewConfigValidationFailed("ENV", "must be development or production")
	}
	if c.RateLimitRPS < 0 {
		return apperrors.NewConfigValidationFailed("RATE_LIMIT_RPS", "must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return apperrors.NewConfigValidationFailed("RATE_LIMIT_BURST", "must be positive when rate limiting is on")
	}
	if c.ShutdownTimeout <= 0 {
		return apperrors.NewConfigValidationFailed("SHUTDOWN_TIMEOUT", "must be positive")
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return apperrors.NewConfigValidationFailed("LOG_LEVEL", "must be one of debug, info, warn, error, dpanic, panic, fatal")
		}
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseFloat(value, 64); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultValue
}
