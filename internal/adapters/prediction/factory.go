package prediction

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// PredictorType represents the type of prediction backend
type PredictorType string

const (
	PredictorTypeVertex PredictorType = "vertex"
	PredictorTypeMock   PredictorType = "mock"
)

// Factory creates Predictor instances based on configuration
type Factory struct {
	clientOptions []option.ClientOption
}

// NewFactory creates a new predictor factory. Client options are passed to remote backends.
func NewFactory(opts ...option.ClientOption) *Factory {
	return &Factory{
		clientOptions: opts,
	}
}

// Create creates a Predictor instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, config *Config) (Predictor, error) {
	if config == nil {
		return nil, fmt.Errorf("predictor config is required")
	}

	predictorType := PredictorType(strings.ToLower(config.Type))

	var predictor Predictor
	var err error

	switch predictorType {
	case PredictorTypeVertex:
		predictor, err = NewVertexPredictor(ctx, config, f.clientOptions...)
	case PredictorTypeMock:
		predictor, err = f.createMockPredictor(config)
	default:
		return nil, fmt.Errorf("unsupported predictor type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s predictor: %w", config.Type, err)
	}

	return predictor, nil
}

// createMockPredictor creates an in-memory predictor, optionally with canned output
func (f *Factory) createMockPredictor(config *Config) (Predictor, error) {
	if config.MockResponse == "" {
		return NewMockPredictor(), nil
	}

	predictions, err := DecodeValues([]byte(config.MockResponse))
	if err != nil {
		return nil, fmt.Errorf("invalid mock response: %w", err)
	}
	if predictions == nil {
		predictions = []*structpb.Value{}
	}
	return NewMockPredictor(predictions...), nil
}
