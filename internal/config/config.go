package config

import (
	"os"
	"strconv"
	"time"

	"nextgen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Server  ServerConfig
	Presets PresetConfig
	Log     LogConfig
}

// DataConfig holds dataset and view settings
type DataConfig struct {
	File          string
	PreviewRows   int
	HistogramBins int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// PresetConfig selects the SQL store for saved filter presets
type PresetConfig struct {
	Driver string
	DSN    string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    *loadDataConfig(),
		Server:  *loadServerConfig(),
		Presets: *loadPresetConfig(),
		Log:     LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:          getEnvOrDefault("DATA_FILE", "user_data.csv"),
		PreviewRows:   getEnvIntOrDefault("PREVIEW_ROWS", 20),
		HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 20),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// loadPresetConfig prefers DATABASE_URL (PostgreSQL) over the SQLite default.
func loadPresetConfig() *PresetConfig {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return &PresetConfig{Driver: "postgres", DSN: url}
	}
	return &PresetConfig{
		Driver: getEnvOrDefault("PRESET_DRIVER", "sqlite3"),
		DSN:    getEnvOrDefault("PRESET_DSN", "presets.db"),
	}
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("data file is required")
	}
	if config.Data.PreviewRows <= 0 {
		return errors.ConfigInvalid("preview rows must be positive")
	}
	if config.Data.HistogramBins <= 0 {
		return errors.ConfigInvalid("histogram bins must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	switch config.Presets.Driver {
	case "sqlite3", "postgres":
	default:
		return errors.ConfigInvalid("preset driver must be sqlite3 or postgres")
	}
	if config.Presets.DSN == "" {
		return errors.ConfigInvalid("preset DSN is required")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
