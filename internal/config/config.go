// Package config provides environment-driven configuration for the CLI and
// the HTTP server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings. Every field has an environment variable
// counterpart; .env files are loaded by the CLI entry point before this is
// read.
type Config struct {
	// GeminiAPIKey enables the optional AI keyword augmentation when set.
	GeminiAPIKey string
	// GeminiModel overrides the default augmentation model.
	GeminiModel string
	// DatabaseURL enables run-history persistence when set.
	DatabaseURL string
	// AuthSecret enables JWT bearer authentication on the API when set.
	AuthSecret string
	// AdminPasswordHash is the bcrypt hash exchanged for a token.
	AdminPasswordHash string
	// Port is the HTTP listen port.
	Port int
	// OutputDir is where processed .tex and .pdf files are saved.
	OutputDir string
	// UseBrowser enables the headless browser fallback for SPA job boards.
	UseBrowser bool
	// Verbose enables debug logging.
	Verbose bool
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() Config {
	return Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AuthSecret:        os.Getenv("AUTH_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Port:              envInt("PORT", 8080),
		OutputDir:         envDefault("OUTPUT_DIR", "resumes"),
		UseBrowser:        envBool("USE_BROWSER"),
		Verbose:           envBool("VERBOSE"),
	}
}

// Validate checks the configuration for inconsistent values.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.AuthSecret != "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("config error: AUTH_SECRET is set but ADMIN_PASSWORD_HASH is empty")
	}
	return nil
}

func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
