package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default per-call timeouts for the two backend stages.
const (
	DefaultProfileTimeout = 120 * time.Second
	DefaultAITimeout      = 150 * time.Second
)

// Config holds all configuration for GitPulse.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type BackendConfig struct {
	BaseURL        string
	ProfileTimeout time.Duration
	AITimeout      time.Duration
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("GITPULSE_PORT", 8080),
			Env:  envString("GITPULSE_ENV", "development"),
		},
		Backend: BackendConfig{
			BaseURL:        envString("BACKEND_BASE_URL", "http://localhost:5000"),
			ProfileTimeout: envDuration("PROFILE_TIMEOUT", DefaultProfileTimeout),
			AITimeout:      envDuration("AI_TIMEOUT", DefaultAITimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config after flags or env have been applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("GITPULSE_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must start with http:// or https://, got %q", c.Backend.BaseURL)
	}

	if c.Backend.ProfileTimeout <= 0 {
		return fmt.Errorf("PROFILE_TIMEOUT must be positive, got %s", c.Backend.ProfileTimeout)
	}
	if c.Backend.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %s", c.Backend.AITimeout)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
