package prediction

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

// Predictor defines the interface for remote model-serving endpoints
type Predictor interface {
	// Predict runs a synchronous online prediction over a batch of instances
	Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error)

	// Endpoint returns the resource name of the target endpoint
	Endpoint() string

	// Close releases the underlying connection
	Close() error
}

// PredictRequest holds the instances submitted to the endpoint
type PredictRequest struct {
	Instances []*structpb.Value
}

// PredictResponse holds the endpoint output in instance order
type PredictResponse struct {
	Predictions     []*structpb.Value
	DeployedModelID string
	Model           string
}

// Config configures a Predictor
type Config struct {
	Type        string `json:"type" yaml:"type"`
	ProjectID   string `json:"project_id" yaml:"project_id"`
	Location    string `json:"location" yaml:"location"`
	EndpointID  string `json:"endpoint_id" yaml:"endpoint_id"`
	APIEndpoint string `json:"api_endpoint" yaml:"api_endpoint"`

	// MockResponse is the JSON array returned by the mock backend; empty echoes instances
	MockResponse string `json:"mock_response" yaml:"mock_response"`
}
