package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "TopupPay"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultSessionTTL     = 24 * time.Hour
	defaultIdempotencyTTL = 24 * time.Hour
	defaultUpstreamWait   = 15 * time.Second
	defaultVerifyTimeout  = 10 * time.Second
	defaultVerifyAttempts = 3
	defaultVerifyBackoff  = time.Second
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName           string
	AppEnv            string
	Port              string
	LogLevel          string
	UpstreamBaseURL   string
	UpstreamTimeout   time.Duration
	PaystackPublicKey string
	DatabaseURL       string
	RedisURL          string
	SessionTTL        time.Duration
	IdempotencyTTL    time.Duration
	VerifyTimeout     time.Duration
	VerifyAttempts    int
	VerifyBackoff     time.Duration
	ShutdownPeriod    time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:           getEnv("APP_NAME", defaultAppName),
		AppEnv:            getEnv("APP_ENV", defaultAppEnv),
		Port:              getEnv("PORT", defaultPort),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		UpstreamBaseURL:   os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamTimeout:   defaultUpstreamWait,
		PaystackPublicKey: os.Getenv("PAYSTACK_PUBLIC_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionTTL:        defaultSessionTTL,
		IdempotencyTTL:    defaultIdempotencyTTL,
		VerifyTimeout:     defaultVerifyTimeout,
		VerifyAttempts:    defaultVerifyAttempts,
		VerifyBackoff:     defaultVerifyBackoff,
		ShutdownPeriod:    defaultShutdownDelay,
	}

	durations := []struct {
		envVar string
		target *time.Duration
	}{
		{"UPSTREAM_TIMEOUT", &cfg.UpstreamTimeout},
		{"SESSION_TTL", &cfg.SessionTTL},
		{"IDEMPOTENCY_TTL", &cfg.IdempotencyTTL},
		{"VERIFY_TIMEOUT", &cfg.VerifyTimeout},
		{"VERIFY_BACKOFF", &cfg.VerifyBackoff},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownPeriod},
	}
	for _, d := range durations {
		if v := os.Getenv(d.envVar); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.envVar, err)
			}
			*d.target = parsed
		}
	}

	if v := os.Getenv("VERIFY_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid VERIFY_ATTEMPTS: %w", err)
		}
		if attempts < 1 {
			return Config{}, fmt.Errorf("VERIFY_ATTEMPTS must be at least 1")
		}
		cfg.VerifyAttempts = attempts
	}

	if !cfg.IsDev() {
		if cfg.UpstreamBaseURL == "" {
			return Config{}, fmt.Errorf("UPSTREAM_BASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
