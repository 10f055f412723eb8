package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"statbook/domain/stats"
	"statbook/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Plot     PlotConfig
	Server   ServerConfig
	Database DatabaseConfig
	LogLevel string
}

// AnalysisConfig holds defaults for the hypothesis test wrappers
type AnalysisConfig struct {
	Alpha    float64
	Language language.Tag
}

// PlotConfig holds figure rendering settings
type PlotConfig struct {
	WidthCm  float64
	HeightCm float64
	Format   string
	Dir      string
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// DatabaseConfig holds the optional SQL data source
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	lang, err := language.Parse(getEnvOrDefault("STATBOOK_LANG", "en"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid("STATBOOK_LANG is not a valid language tag"), err.Error())
	}

	config := &Config{
		Analysis: AnalysisConfig{
			Alpha:    getEnvFloatOrDefault("STATBOOK_ALPHA", stats.DefaultAlpha),
			Language: lang,
		},
		Plot: PlotConfig{
			WidthCm:  getEnvFloatOrDefault("STATBOOK_PLOT_WIDTH", 16),
			HeightCm: getEnvFloatOrDefault("STATBOOK_PLOT_HEIGHT", 12),
			Format:   strings.ToLower(getEnvOrDefault("STATBOOK_PLOT_FORMAT", "png")),
			Dir:      getEnvOrDefault("STATBOOK_PLOT_DIR", "."),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    int64(getEnvIntOrDefault("MAX_BODY_BYTES", 8<<20)),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks value ranges
func Validate(config *Config) error {
	if config.Analysis.Alpha <= 0 || config.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("STATBOOK_ALPHA must be in (0, 1)")
	}
	if config.Plot.WidthCm <= 0 || config.Plot.HeightCm <= 0 {
		return errors.ConfigInvalid("plot dimensions must be positive")
	}
	switch config.Plot.Format {
	case "png", "svg":
	default:
		return errors.ConfigInvalid("STATBOOK_PLOT_FORMAT must be png or svg")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return errors.ConfigInvalid("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
