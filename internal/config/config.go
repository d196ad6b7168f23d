package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath    string
	LogLevel        string
	Port            int
	DevMode         bool
	RefreshSchedule string        // cron spec for the quote refresh / alert check cycle
	InsightCooldown time.Duration // window in which duplicate insights are suppressed
	QuoteTimeout    time.Duration // how long an analytics cycle waits for quotes
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8080),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		DatabasePath:    getEnv("DATABASE_PATH", "./data/portfolio.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 30s"),
		InsightCooldown: getEnvAsDuration("INSIGHT_COOLDOWN", 24*time.Hour),
		QuoteTimeout:    getEnvAsDuration("QUOTE_TIMEOUT", 3*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
