// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"invoiceqc/internal/logger"
)

// Config holds all runtime configuration for the invoice QC tool.
type Config struct {
	// Validation defaults. Both can be overridden per run with --rules.
	Tolerance         float64
	AllowedCurrencies []string
	MinInvoiceYear    int

	// HTTP server configuration for the serve command.
	HTTPAddr string

	// Run-history database. Empty disables persistence.
	DBPath string

	// Logging configuration.
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	config := &Config{
		Tolerance:         0.05,
		AllowedCurrencies: []string{"INR", "EUR", "USD", "GBP"},
		MinInvoiceYear:    2000,
		HTTPAddr:          getEnv("IQC_HTTP_ADDR", ":8080"),
		DBPath:            getEnv("IQC_DB_PATH", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stderr"),
	}

	if raw := os.Getenv("IQC_TOLERANCE"); raw != "" {
		tol, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid IQC_TOLERANCE %q: %w", raw, err)
		}
		config.Tolerance = tol
	}

	if raw := os.Getenv("IQC_CURRENCIES"); raw != "" {
		var codes []string
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, strings.ToUpper(code))
			}
		}
		config.AllowedCurrencies = codes
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Tolerance)
	}
	if len(c.AllowedCurrencies) == 0 {
		return fmt.Errorf("at least one allowed currency is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
