// Package config loads service configuration from environment variables.
// A .env file is honored in development; real environments set variables
// directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the invoice frontend.
type Config struct {
	Service   ServiceConfig
	API       APIConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

// ServiceConfig identifies the service instance.
type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// APIConfig points at the remote invoice/auth API this frontend proxies to.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// LoggingConfig controls the zerolog global level.
type LoggingConfig struct {
	Level string
}

// TracingConfig controls OpenTelemetry trace export.
type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

// ShutdownConfig controls graceful shutdown behavior.
type ShutdownConfig struct {
	TimeoutSeconds             int
	ReadinessDrainDelaySeconds int
}

// Load reads configuration from the environment, applying defaults for
// anything unset. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "invoice-frontend"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("SERVICE_ENV", "development"),
			Port:    getEnv("PORT", "3000"),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getEnvInt("API_TIMEOUT_SECONDS", 15),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Shutdown: ShutdownConfig{
			TimeoutSeconds:             getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
			ReadinessDrainDelaySeconds: getEnvInt("READINESS_DRAIN_DELAY_SECONDS", 0),
		},
	}
}

// Validate checks that required configuration is present and coherent.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.Service.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive, got %d", c.API.TimeoutSeconds)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATE must be in [0,1], got %f", c.Tracing.SampleRate)
	}
	return nil
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, release-mode gin).
func (c *Config) IsProduction() bool {
	return c.Service.Env == "production"
}

// GetAPITimeoutDuration returns the remote API client timeout.
func (c *Config) GetAPITimeoutDuration() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// GetShutdownTimeoutDuration returns the graceful shutdown timeout.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.Shutdown.TimeoutSeconds) * time.Second
}

// GetReadinessDrainDelayDuration returns how long to fail readiness before
// starting HTTP shutdown.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.Shutdown.ReadinessDrainDelaySeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func getEnvBool(key string, fallback bool) bool {
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

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
