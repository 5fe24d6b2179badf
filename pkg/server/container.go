package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"prediction-proxy/internal/adapters/prediction"
	"prediction-proxy/internal/config"
	"prediction-proxy/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	PredictionService services.PredictionService

	// Internal dependencies
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container, dialing the configured predictor
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := logrus.New()
	if err := config.ConfigureLogger(logger, cfg.Logging); err != nil {
		return nil, err
	}

	predictor, err := prediction.NewFactory().Create(context.Background(), &prediction.Config{
		Type:         cfg.Prediction.Backend,
		ProjectID:    cfg.Prediction.ProjectID,
		Location:     cfg.Prediction.Location,
		EndpointID:   cfg.Prediction.EndpointID,
		APIEndpoint:  cfg.Prediction.APIEndpoint,
		MockResponse: cfg.Prediction.MockResponse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create predictor: %w", err)
	}

	return NewContainerWithPredictor(cfg, predictor, logger)
}

// NewContainerWithPredictor creates a container around an existing predictor
func NewContainerWithPredictor(cfg *config.Config, predictor prediction.Predictor, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.New()
	}

	serviceContainer, err := services.NewServiceContainer(predictor, &services.ServiceConfig{
		Timeout: cfg.Prediction.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(config.GetServerlessConfig().LogFields()).WithFields(logrus.Fields{
		"backend":  cfg.Prediction.Backend,
		"endpoint": predictor.Endpoint(),
	}).Info("Prediction proxy initialized")

	return &Container{
		Config:            cfg,
		Logger:            logger,
		PredictionService: serviceContainer.PredictionService,
		services:          serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}
	return nil
}
