package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Prediction backends
const (
	BackendVertex = "vertex"
	BackendMock   = "mock"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required,numeric"`
	Logging     LoggingConfig
	Prediction  PredictionConfig
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"required,oneof=text json"`
}

// PredictionConfig holds the remote prediction endpoint configuration
type PredictionConfig struct {
	Backend      string `validate:"required,oneof=vertex mock"`
	ProjectID    string `validate:"required_if=Backend vertex"`
	Location     string `validate:"required_if=Backend vertex"`
	EndpointID   string `validate:"required_if=Backend vertex"`
	APIEndpoint  string
	Timeout      time.Duration `validate:"gte=0"`
	MockResponse string        `validate:"omitempty,json"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("PREDICTION_BACKEND", BackendVertex)
	v.SetDefault("PREDICTION_TIMEOUT", "0s")

	// Fall back to the variables set by Google Cloud runtimes
	_ = v.BindEnv("PREDICTION_PROJECT_ID", "PREDICTION_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("PREDICTION_LOCATION", "PREDICTION_LOCATION", "GOOGLE_CLOUD_REGION")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Prediction: PredictionConfig{
			Backend:      v.GetString("PREDICTION_BACKEND"),
			ProjectID:    v.GetString("PREDICTION_PROJECT_ID"),
			Location:     v.GetString("PREDICTION_LOCATION"),
			EndpointID:   v.GetString("PREDICTION_ENDPOINT_ID"),
			APIEndpoint:  v.GetString("PREDICTION_API_ENDPOINT"),
			Timeout:      v.GetDuration("PREDICTION_TIMEOUT"),
			MockResponse: v.GetString("PREDICTION_MOCK_RESPONSE"),
		},
	}

	return config, nil
}

// Validate checks the configuration for missing or malformed values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
