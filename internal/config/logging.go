package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogger applies the logging configuration to the given logger
func ConfigureLogger(logger *logrus.Logger, cfg LoggingConfig) error {
	if cfg.Level == "" {
		cfg.Level = "info"
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}
