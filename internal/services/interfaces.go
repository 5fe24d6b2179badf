package services

import (
	"context"
	"errors"
)

// Service level error types
var (
	// ErrInvalidPayload marks a request body that is not JSON
	ErrInvalidPayload = errors.New("invalid prediction payload")

	// ErrInvalidPrediction marks endpoint output that cannot be serialized
	ErrInvalidPrediction = errors.New("invalid prediction output")
)

// PredictionService defines the interface for the prediction proxy operation
type PredictionService interface {
	// Predict forwards one JSON payload as a single instance and returns the serialized predictions
	Predict(ctx context.Context, payload []byte) (*PredictionResult, error)

	// Endpoint returns the resource name of the remote endpoint
	Endpoint() string
}

// PredictionResult holds the serialized output of one prediction call
type PredictionResult struct {
	Body            []byte
	Predictions     int
	DeployedModelID string
	Model           string
}
