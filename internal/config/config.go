package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Alegra AlegraConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// AlegraConfig contains credentials and options for the Alegra billing API.
type AlegraConfig struct {
	Email   string
	Token   string
	BaseURL string
}

// HasCredentials reports whether both credential values are present. Missing
// credentials do not prevent startup; upstream calls will fail instead.
func (a AlegraConfig) HasCredentials() bool {
	return a.Email != "" && a.Token != ""
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("PORT", "3000"),
		},
		Alegra: AlegraConfig{
			Email:   os.Getenv("ALEGRA_EMAIL"),
			Token:   os.Getenv("ALEGRA_TOKEN"),
			BaseURL: getenvWithDefault("ALEGRA_BASE_URL", "https://api.alegra.com/api/v1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. Alegra
// credentials are deliberately not required here; their absence is only
// warned about at startup.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	if c.Alegra.BaseURL == "" {
		return errors.New("ALEGRA_BASE_URL must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
