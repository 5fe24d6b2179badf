package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"prediction-proxy/internal/adapters/prediction"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	PredictionService PredictionService

	predictor prediction.Predictor
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewServiceContainer creates a new service container around the given predictor
func NewServiceContainer(predictor prediction.Predictor, config *ServiceConfig) (*ServiceContainer, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor cannot be nil")
	}

	if config == nil {
		config = &ServiceConfig{}
	}

	return &ServiceContainer{
		PredictionService: NewPredictionService(predictor, config.Timeout, config.Logger),
		predictor:         predictor,
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.PredictionService == nil {
		return fmt.Errorf("prediction service is nil")
	}
	return nil
}

// Close releases the predictor connection
func (sc *ServiceContainer) Close() error {
	if sc.predictor != nil {
		if err := sc.predictor.Close(); err != nil {
			return fmt.Errorf("failed to close predictor: %w", err)
		}
	}
	return nil
}
