package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"mideck/internal"
	"mideck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig `validate:"required"`
	API       APIConfig    `validate:"required"`
	Demo      DemoConfig   `validate:"required"`
	Deck      DeckConfig
	Logging   LoggingConfig `validate:"required"`
	Metrics   MetricsConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	GinMode         string        `validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// APIConfig holds settings for the standalone JSON API binary.
type APIConfig struct {
	Port string `validate:"required,numeric"`
}

// DemoConfig controls the jitter stream of the interactive demo.
type DemoConfig struct {
	Seed       uint64
	SeedPolicy string `validate:"oneof=reseed stream"`
}

// DeckConfig points at an on-disk manifest. Empty means the embedded deck.
type DeckConfig struct {
	Manifest string
}

type LoggingConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

type MetricsConfig struct {
	Enabled bool
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `validate:"omitempty,numeric"`
	Enabled bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	seed, err := getEnvUint64OrDefault("DEMO_SEED", 42)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load demo configuration")
	}

	level := strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if parsed, err := internal.ParseLogLevel(level); err == nil {
		level = parsed.String()
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			GinMode:         getEnvOrDefault("GIN_MODE", "release"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		API: APIConfig{
			Port: getEnvOrDefault("API_PORT", "8081"),
		},
		Demo: DemoConfig{
			Seed:       seed,
			SeedPolicy: strings.ToLower(getEnvOrDefault("DEMO_SEED_POLICY", "reseed")),
		},
		Deck: DeckConfig{
			Manifest: getEnvOrDefault("DECK_MANIFEST", ""),
		},
		Logging: LoggingConfig{
			Level: level,
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() internal.LogLevel {
	level, _ := internal.ParseLogLevel(c.Logging.Level)
	return level
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var fields validator.ValidationErrors
		if ok := asValidationErrors(err, &fields); ok && len(fields) > 0 {
			f := fields[0]
			return errors.ConfigInvalid(fmt.Sprintf("%s failed %q (got %v)", f.Namespace(), f.Tag(), f.Value()))
		}
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint64OrDefault(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
	}
	return n, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
