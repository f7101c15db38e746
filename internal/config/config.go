package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	ProductsAPI ProductsAPIConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// ProductsAPIConfig points at the backend product service.
type ProductsAPIConfig struct {
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

// SessionConfig controls how long an idle dashboard stays mounted.
type SessionConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// RateLimitConfig bounds form submissions per session.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// LogConfig holds logger options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("PRODUCTS_API_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	ttl, err := getenvDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	perSecond, err := getenvFloat("SUBMIT_RATE_LIMIT", 2)
	if err != nil {
		return nil, err
	}
	burst, err := getenvInt("SUBMIT_RATE_BURST", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "3000"),
		},
		ProductsAPI: ProductsAPIConfig{
			BaseURL: getenvWithDefault("PRODUCTS_API_URL", "http://localhost:8080"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			TTL:           ttl,
			SweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "*/5 * * * *"),
		},
		RateLimit: RateLimitConfig{
			PerSecond: perSecond,
			Burst:     burst,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.ProductsAPI.BaseURL == "" {
		return errors.New("PRODUCTS_API_URL must not be empty")
	}

	if c.ProductsAPI.Timeout < 0 {
		return errors.New("PRODUCTS_API_TIMEOUT must not be negative")
	}

	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	if _, err := cron.ParseStandard(c.Session.SweepSchedule); err != nil {
		return fmt.Errorf("SESSION_SWEEP_SCHEDULE is invalid: %w", err)
	}

	if c.RateLimit.PerSecond <= 0 {
		return errors.New("SUBMIT_RATE_LIMIT must be positive")
	}

	if c.RateLimit.Burst < 1 {
		return errors.New("SUBMIT_RATE_BURST must be at least 1")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
