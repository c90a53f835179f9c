// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=3000, APP_LOG_LEVEL=debug
type Config struct {
	// Server configuration (embedded to flatten env vars)
	Server ServerConfig

	// Logging configuration (embedded to flatten env vars)
	Log LogConfig

	// Request throttling configuration
	RateLimit RateLimitConfig

	// In-memory store configuration
	Store StoreConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 3000)
	Port int `envconfig:"PORT" default:"3000"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the peer address is always the client (default: none)
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: plain)
	Format string `envconfig:"LOG_FORMAT" default:"plain"`
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	// Enabled turns the limiter on (default: true)
	Enabled bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`

	// Requests is the number of requests allowed per window (default: 100)
	Requests int `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`

	// Window is the period the request budget refills over (default: 1h)
	Window time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1h"`
}

// StoreConfig holds settings for the in-memory stores.
type StoreConfig struct {
	// SeedJokes loads the sample joke at startup (default: false)
	SeedJokes bool `envconfig:"SEED_JOKES" default:"false"`
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate rejects proxy entries that are neither an IP nor a CIDR.
func (c *ServerConfig) Validate() error {
	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("APP_TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}
	return nil
}

// Validate rejects settings the limiter cannot work with.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Requests <= 0 {
		return fmt.Errorf("APP_RATE_LIMIT_REQUESTS must be positive, got %d", c.Requests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("APP_RATE_LIMIT_WINDOW must be positive, got %s", c.Window)
	}
	return nil
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("failed to load rate limit config: %w", err)
	}
	if err := cfg.RateLimit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Store); err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}

	return &cfg, nil
}
