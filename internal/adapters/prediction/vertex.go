package prediction

import (
	"context"
	"fmt"
	"sync"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// predictionAPI is the subset of the Vertex AI prediction client used here
type predictionAPI interface {
	Predict(ctx context.Context, req *aiplatformpb.PredictRequest, opts ...gax.CallOption) (*aiplatformpb.PredictResponse, error)
	Close() error
}

// VertexPredictor calls a Vertex AI online prediction endpoint
type VertexPredictor struct {
	client   predictionAPI
	endpoint string

	mu     sync.RWMutex
	closed bool
}

// EndpointName builds the endpoint resource name
func EndpointName(projectID, location, endpointID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/endpoints/%s", projectID, location, endpointID)
}

// RegionalAPIEndpoint returns the regional host serving prediction requests
func RegionalAPIEndpoint(location string) string {
	return fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)
}

// NewVertexPredictor dials the regional prediction service for the configured endpoint
func NewVertexPredictor(ctx context.Context, config *Config, opts ...option.ClientOption) (*VertexPredictor, error) {
	if config.ProjectID == "" || config.Location == "" || config.EndpointID == "" {
		return nil, fmt.Errorf("project, location and endpoint are required for vertex predictor")
	}

	apiEndpoint := config.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = RegionalAPIEndpoint(config.Location)
	}

	clientOpts := append([]option.ClientOption{option.WithEndpoint(apiEndpoint)}, opts...)
	client, err := aiplatform.NewPredictionClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}

	return newVertexPredictor(client, EndpointName(config.ProjectID, config.Location, config.EndpointID)), nil
}

func newVertexPredictor(client predictionAPI, endpoint string) *VertexPredictor {
	return &VertexPredictor{
		client:   client,
		endpoint: endpoint,
	}
}

// Predict implements Predictor.Predict
func (v *VertexPredictor) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.closed {
		return nil, NewPredictionError("Predict", v.endpoint, codes.Canceled, ErrClosed)
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.endpoint,
		Instances: req.Instances,
	})
	if err != nil {
		return nil, FromRemote("Predict", v.endpoint, err)
	}

	return &PredictResponse{
		Predictions:     resp.GetPredictions(),
		DeployedModelID: resp.GetDeployedModelId(),
		Model:           resp.GetModel(),
	}, nil
}

// Endpoint implements Predictor.Endpoint
func (v *VertexPredictor) Endpoint() string {
	return v.endpoint
}

// Close implements Predictor.Close
func (v *VertexPredictor) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	return v.client.Close()
}
