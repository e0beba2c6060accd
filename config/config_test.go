package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Service.Name != "invoice-frontend" {
		t.Errorf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.Service.Port != "3000" {
		t.Errorf("Service.Port = %q", cfg.Service.Port)
	}
	if cfg.API.BaseURL == "" {
		t.Error("API.BaseURL must default to something")
	}
	if cfg.GetAPITimeoutDuration() != 15*time.Second {
		t.Errorf("API timeout = %v", cfg.GetAPITimeoutDuration())
	}
	if cfg.IsProduction() {
		t.Error("default env must not be production")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVICE_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("API_BASE_URL", "https://api.internal:9000")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_SAMPLE_RATE", "0.25")

	cfg := Load()

	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.Service.Port != "8081" {
		t.Errorf("Port = %q", cfg.Service.Port)
	}
	if cfg.API.BaseURL != "https://api.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.GetAPITimeoutDuration() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.GetAPITimeoutDuration())
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.SampleRate != 0.25 {
		t.Errorf("tracing = %+v", cfg.Tracing)
	}
}

func TestLoadIgnoresGarbageValues(t *testing.T) {
	t.Setenv("API_TIMEOUT_SECONDS", "soon")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := Load()

	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want default 15", cfg.API.TimeoutSeconds)
	}
	if cfg.Tracing.Enabled {
		t.Error("unparseable bool must fall back to default false")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base URL", func(c *Config) { c.API.BaseURL = "" }},
		{"empty port", func(c *Config) { c.Service.Port = "" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }},
		{"sample rate above 1", func(c *Config) { c.Tracing.SampleRate = 1.5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
