package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/logger"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Shortener ShortenerConfig
	App       AppConfig
	Log       logger.Config
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

// ShortenerConfig holds shortener settings
type ShortenerConfig struct {
	Enabled     bool
	Domain      string // public prefix used to build short URLs
	StorageFile string
	CodeLength  int
	MaxAttempts int // bound on collision retries during code generation
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Environment string // "development", "production"
}

// Load reads configuration from environment variables, with .env support
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", "localhost"),
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSOrigins:     getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Shortener: ShortenerConfig{
			Enabled:     getBoolEnv("SHORTENER_ENABLED", true),
			Domain:      getEnv("SHORTENER_DOMAIN", ""),
			StorageFile: getEnv("STORAGE_FILE", "url_mappings.json"),
			CodeLength:  getIntEnv("CODE_LENGTH", 4),
			MaxAttempts: getIntEnv("MAX_GENERATE_ATTEMPTS", 100),
		},
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
	cfg.Log.Environment = cfg.App.Environment

	// Default public domain if not provided
	if cfg.Shortener.Domain == "" {
		cfg.Shortener.Domain = fmt.Sprintf("http://%s:%s", cfg.Server.Host, cfg.Server.Port)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %s (must be 1-65535)", c.Server.Port)
	}

	if c.Shortener.StorageFile == "" {
		return errors.New("storage file path cannot be empty")
	}

	if c.Shortener.CodeLength < 1 || c.Shortener.CodeLength > 16 {
		return fmt.Errorf("invalid code length: %d (must be 1-16)", c.Shortener.CodeLength)
	}

	if c.Shortener.MaxAttempts < 1 {
		return fmt.Errorf("invalid max generate attempts: %d", c.Shortener.MaxAttempts)
	}

	// Validate environment
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"testing":     true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, production, or testing)", c.App.Environment)
	}

	// Validate log level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ============================================================
// HELPER FUNCTIONS
// ============================================================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
