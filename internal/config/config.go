package config

import (
	"fmt"
	"os"

	"birthday-tracker-api/internal/database"
	"birthday-tracker-api/internal/metrics"
	"birthday-tracker-api/internal/secrets"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Secret providers
const (
	SecretsProviderAWS = "aws"
	SecretsProviderEnv = "env"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	LogFormat   string
	Database    DatabaseConfig
	Secrets     SecretsConfig
	Metrics     MetricsConfig
	Tracing     TracingConfig
	RateLimit   RateLimitConfig
}

// SecretsConfig selects where database credentials come from
type SecretsConfig struct {
	Provider   string // "aws" or "env"
	SecretName string
	Region     string

	// Used by the env provider only
	Username     string
	Password     string
	DatabaseName string
}

// MetricsConfig holds the CloudWatch metric namespace and service dimension
type MetricsConfig struct {
	Namespace string
	Service   string
}

// TracingConfig holds the OTLP/HTTP trace exporter settings
type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

// RateLimitConfig holds local server rate limiting
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and a .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_DRIVER", database.DriverMySQL)
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_PATH", "./data/birthdays.db")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_SECRET_NAME", "BirthdayPresentTrackerDB")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("SECRETS_PROVIDER", SecretsProviderAWS)
	v.SetDefault("METRICS_NAMESPACE", metrics.DefaultNamespace)
	v.SetDefault("SERVICE_NAME", metrics.DefaultService)
	v.SetDefault("TRACING_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Path:            v.GetString("DB_PATH"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Secrets: SecretsConfig{
			Provider:     v.GetString("SECRETS_PROVIDER"),
			SecretName:   v.GetString("DB_SECRET_NAME"),
			Region:       v.GetString("AWS_REGION"),
			Username:     v.GetString("DB_USERNAME"),
			Password:     v.GetString("DB_PASSWORD"),
			DatabaseName: v.GetString("DB_NAME"),
		},
		Metrics: MetricsConfig{
			Namespace: v.GetString("METRICS_NAMESPACE"),
			Service:   v.GetString("SERVICE_NAME"),
		},
		Tracing: TracingConfig{
			Enabled:  v.GetBool("TRACING_ENABLED"),
			Endpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate checks the keys each driver and secrets provider needs
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	switch c.Secrets.Provider {
	case SecretsProviderAWS:
		if c.Secrets.SecretName == "" {
			return fmt.Errorf("DB_SECRET_NAME is required when SECRETS_PROVIDER=aws")
		}
		if c.Secrets.Region == "" {
			return fmt.Errorf("AWS_REGION is required when SECRETS_PROVIDER=aws")
		}
	case SecretsProviderEnv:
		if c.Database.Driver == database.DriverMySQL {
			if err := c.Secrets.Credentials().Validate(); err != nil {
				return fmt.Errorf("DB_USERNAME and DB_NAME are required when SECRETS_PROVIDER=env: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported SECRETS_PROVIDER: %q", c.Secrets.Provider)
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Credentials returns the bundle configured for the env provider
func (s SecretsConfig) Credentials() *secrets.Credentials {
	return &secrets.Credentials{
		Username:     s.Username,
		Password:     s.Password,
		DatabaseName: s.DatabaseName,
	}
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
