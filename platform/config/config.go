// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-specific config interfaces (principle of least privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// TokenConfig provides settings for the credential vault's token issuer.
// The signing secret is injected here, never read from a package-level constant.
type TokenConfig interface {
	GetTokenSecret() string
	GetTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// SchedulerConfig provides settings for the background job queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetQueueName() string
	GetWorkerConcurrency() int
}

// EmailConfig provides settings for outbound email.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// =============================================================================
// Main config struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env         string
	HTTPAddr    string
	DatabaseURL string

	TokenSecret string
	TokenTTL    time.Duration

	CORSAllowAll bool
	CORSOrigins  []string

	RedisURL          string
	QueueName         string
	WorkerConcurrency int

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development. Missing required values are an error at startup, not at
// first use.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		TokenSecret: os.Getenv("TOKEN_SECRET"),
		TokenTTL:    getDuration("TOKEN_TTL", 30*time.Minute),

		CORSAllowAll: getBool("CORS_ALLOW_ALL", true),
		CORSOrigins:  getList("CORS_ORIGINS"),

		RedisURL:          os.Getenv("REDIS_URL"),
		QueueName:         getEnv("QUEUE_NAME", "default"),
		WorkerConcurrency: getInt("WORKER_CONCURRENCY", 10),

		EmailEnabled:     getBool("EMAIL_ENABLED", false),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Tenant Core"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "no-reply@localhost"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) GetDatabaseURL() string        { return c.DatabaseURL }
func (c *Config) GetTokenSecret() string        { return c.TokenSecret }
func (c *Config) GetTokenTTL() time.Duration    { return c.TokenTTL }
func (c *Config) GetHTTPAddr() string           { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool         { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string      { return c.CORSOrigins }
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetQueueName() string          { return c.QueueName }
func (c *Config) GetWorkerConcurrency() int     { return c.WorkerConcurrency }
func (c *Config) GetEmailEnabled() bool         { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
