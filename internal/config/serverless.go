package config

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Serverless platforms
const (
	PlatformNone           = ""
	PlatformLambda         = "lambda"
	PlatformCloudFunctions = "cloudfunctions"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	Platform     string
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration detected at first use
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = DetectServerless()
	})
	return serverlessConfig
}

// DetectServerless inspects the environment variables set by the hosting runtimes
func DetectServerless() *ServerlessConfig {
	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		return &ServerlessConfig{
			Platform:     PlatformLambda,
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	case os.Getenv("FUNCTION_TARGET") != "" || os.Getenv("K_SERVICE") != "":
		return &ServerlessConfig{
			Platform:     PlatformCloudFunctions,
			FunctionName: GetEnv("FUNCTION_TARGET", os.Getenv("K_SERVICE")),
			Region:       os.Getenv("GOOGLE_CLOUD_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	default:
		return &ServerlessConfig{Stage: GetEnv("STAGE", "dev")}
	}
}

// IsServerless reports whether a serverless runtime was detected
func (s *ServerlessConfig) IsServerless() bool {
	return s.Platform != PlatformNone
}

// Mode returns the platform name, or "server" outside a serverless runtime
func (s *ServerlessConfig) Mode() string {
	if s.IsServerless() {
		return s.Platform
	}
	return "server"
}

// LogFields describes the deployment for startup logs
func (s *ServerlessConfig) LogFields() logrus.Fields {
	fields := logrus.Fields{"mode": s.Mode()}
	if s.IsServerless() {
		fields["function"] = s.FunctionName
		fields["region"] = s.Region
		fields["stage"] = s.Stage
	}
	return fields
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(sc *ServerlessConfig, config *Config) *Config {
	if !sc.IsServerless() {
		return config
	}

	// Platform log collectors parse one JSON object per line
	if os.Getenv("LOG_FORMAT") == "" {
		config.Logging.Format = "json"
	}

	if config.Prediction.Location == "" && sc.Platform == PlatformCloudFunctions {
		config.Prediction.Location = sc.Region
	}

	return config
}

// GetOptimizedConfig returns validated configuration adapted to the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	config = AdaptConfigForServerless(GetServerlessConfig(), config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
